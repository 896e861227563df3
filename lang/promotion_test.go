package lang

import "testing"

func TestPromoteIntegerToFractional(t *testing.T) {
	obj := Object{Kind: KindInteger, Int: 5}
	promoted, ok := Promote(obj, KindFractional)
	if !ok || promoted.Frac != 5 {
		t.Fatalf("Promote(Integer->Fractional) = %+v, %v", promoted, ok)
	}
}

func TestPromoteIntegerToSocketSpec(t *testing.T) {
	obj := Object{Kind: KindInteger, Int: 4}
	promoted, ok := Promote(obj, KindSocketSpec)
	if !ok || promoted.Socket.Count == nil || *promoted.Socket.Count != 4 {
		t.Fatalf("Promote(Integer->SocketSpec) = %+v, %v", promoted, ok)
	}

	if _, ok := Promote(Object{Kind: KindInteger, Int: 7}, KindSocketSpec); ok {
		t.Errorf("count 7 should not promote to a valid socket spec")
	}
}

func TestPromoteNoRuleFails(t *testing.T) {
	if _, ok := Promote(Object{Kind: KindString}, KindInteger); ok {
		t.Errorf("String should not promote to Integer")
	}
}

func TestPromoteSameKindIsNoop(t *testing.T) {
	obj := Object{Kind: KindInteger, Int: 3}
	promoted, ok := Promote(obj, KindInteger)
	if !ok || promoted.Int != 3 {
		t.Errorf("Promote to the same kind should be a no-op success")
	}
}

func TestPromoteSequenceToSocketSpec(t *testing.T) {
	seq := Sequence{Values: []Object{{Kind: KindInteger, Int: 3}}}
	obj, ok := PromoteSequenceToSocketSpec(seq)
	if !ok || obj.Socket.Count == nil || *obj.Socket.Count != 3 {
		t.Fatalf("PromoteSequenceToSocketSpec = %+v, %v", obj, ok)
	}

	multi := Sequence{Values: []Object{{Kind: KindInteger, Int: 1}, {Kind: KindInteger, Int: 2}}}
	if _, ok := PromoteSequenceToSocketSpec(multi); ok {
		t.Errorf("a multi-element sequence should not promote to SocketSpec")
	}
}
