package protocol

import "testing"

func TestIsKnownCode(t *testing.T) {
	cases := []string{
		"",
		ErrProtoBadRequest,
		ErrProtoVersion,
		ErrSessionBusy,
		ErrRateLimit,
		ErrBadDirection,
		ErrInternal,
	}
	for _, c := range cases {
		if !IsKnownCode(c) {
			t.Fatalf("expected known code: %q", c)
		}
	}
	if IsKnownCode("E_NOT_DEFINED") {
		t.Fatalf("expected unknown code rejected")
	}
}

func TestDecodeBase(t *testing.T) {
	m, err := DecodeBase([]byte(`{"type":"MOVE","protocol_version":"1.0","dir":"U"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Type != TypeMove || m.ProtocolVersion != Version {
		t.Fatalf("base=%+v", m)
	}
	if _, err := DecodeBase([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for garbage")
	}
}
