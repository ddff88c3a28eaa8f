package inventory

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestAddCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     AddCommand
		wantErr error
	}{
		{name: "valid", cmd: AddCommand{Item: "apple", Quantity: 10}},
		{name: "zero quantity", cmd: AddCommand{Item: "apple", Quantity: 0}},
		{name: "blank but non-empty name", cmd: AddCommand{Item: " ", Quantity: 1}},
		{name: "empty name", cmd: AddCommand{Item: "", Quantity: 1}, wantErr: ErrInvalidItem},
		{name: "negative quantity", cmd: AddCommand{Item: "banana", Quantity: -2}, wantErr: ErrInvalidQuantity},
		{name: "name checked first", cmd: AddCommand{Item: "", Quantity: -1}, wantErr: ErrInvalidItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "10", want: 10},
		{in: " 7 ", want: 7},
		{in: "-2", want: -2},
		{in: "ten", wantErr: true},
		{in: "2.5", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuantity(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQuantity) {
					t.Fatalf("ParseQuantity(%q) error = %v, want ErrInvalidQuantity", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQuantity(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseQuantity(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: &Error{Op: "add", Err: ErrInvalidItem}, want: KindValidation},
		{err: &Error{Op: "add", Item: "banana", Err: fmt.Errorf("%w, got -2", ErrInvalidQuantity)}, want: KindValidation},
		{err: &Error{Op: "remove", Item: "grape", Err: ErrNotFound}, want: KindNotFound},
		{err: fmt.Errorf("%w: open x: no such file", ErrFileNotFound), want: KindFileNotFound},
		{err: &Error{Op: "load", Path: "x.json", Err: ErrMalformedFile}, want: KindParse},
		{err: &Error{Op: "save", Path: "x.json", Err: ErrPersist}, want: KindIO},
		{err: errors.New("boom"), want: KindUnknown},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}

	if Recoverable(errors.New("boom")) {
		t.Error("Recoverable(unknown) = true, want false")
	}
	if !Recoverable(&Error{Op: "load", Err: ErrFileNotFound}) {
		t.Error("Recoverable(file not found) = false, want true")
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Op: "remove", Item: "grape", Err: ErrNotFound}
	if got, want := err.Error(), `remove "grape": inventory: item not found`; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	err = &Error{Op: "save", Path: "/tmp/inventory.json", Err: ErrPersist}
	if !strings.HasPrefix(err.Error(), "save /tmp/inventory.json: ") {
		t.Fatalf("Error() = %q, want path after op", err.Error())
	}

	var target *Error
	if !errors.As(fmt.Errorf("wrapped: %w", err), &target) || target.Op != "save" {
		t.Fatalf("errors.As did not find *Error")
	}
}

func TestJournal(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 0, 123456000, time.UTC)
	var j Journal
	j.Append(NewAddedEntry("apple", 10, at))
	j.Append(NewAddedEntry("orange", 7, at))

	entries := j.Entries()
	if len(entries) != 2 || j.Len() != 2 {
		t.Fatalf("Entries() len = %d, Len() = %d, want 2", len(entries), j.Len())
	}
	if got, want := entries[0].String(), "2024-03-01 09:30:00.123456: Added 10 of apple"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	entries[0].Message = "mutated"
	if j.Entries()[0].Message != "Added 10 of apple" {
		t.Fatal("Entries() must return a copy")
	}
}

func TestStockRemovedEventClampsRemaining(t *testing.T) {
	evt := NewStockRemovedEvent("apple", 12, -2)
	if !evt.Depleted || evt.Remaining != 0 {
		t.Fatalf("event = %+v, want depleted with 0 remaining", evt)
	}
	if evt.EventID == "" {
		t.Fatal("EventID must be set")
	}

	evt = NewStockRemovedEvent("apple", 3, 7)
	if evt.Depleted || evt.Remaining != 7 {
		t.Fatalf("event = %+v, want 7 remaining", evt)
	}
}
