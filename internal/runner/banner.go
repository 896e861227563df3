package runner

import (
	"github.com/projectdiscovery/gologger"
	updateutils "github.com/projectdiscovery/utils/update"
)

var banner = (`
  __ _ _ _                      _       _ _
 / _(_) | |_ ___ _ __ ____ __ _(_)_ __ (_) |_
| |_| | | __/ _ \ '__/ __/\ \| | '__| | __|
|  _| | | ||  __/ |  \__ \ | |_  | |  | |  |_
|_| |_|_|\__\___|_|  |___/ |_(_)_|_|  |_|\__|
`)

var version = "v0.0.1"

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tfilter spirit compiler\n\n")
}

// GetUpdateCallback returns a callback function that updates filterspirit
func GetUpdateCallback() func() {
	return func() {
		showBanner()
		updateutils.GetUpdateToolCallback("filterspirit", version)()
	}
}
