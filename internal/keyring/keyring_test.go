package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://habits@localhost:5432/dailycheck?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, connStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	for _, v := range []string{"", "   ", "\n"} {
		if err := SetConnectionString(v); !errors.Is(err, ErrEmpty) {
			t.Errorf("SetConnectionString(%q) error = %v, want %v", v, err, ErrEmpty)
		}
	}
}

func TestSetConnectionStringTrims(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("  host=localhost dbname=dailycheck\n"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != "host=localhost dbname=dailycheck" {
		t.Errorf("GetConnectionString() = %q, want trimmed value", got)
	}
}

func TestGetConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	_, err := GetConnectionString()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://habits@localhost:5432/dailycheck"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestCurrentStatus(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	if got := CurrentStatus(); !got.Available || got.Stored || got.Err != nil {
		t.Errorf("empty keyring status = %+v", got)
	}

	if err := SetConnectionString("postgres://habits@localhost/dailycheck"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if got := CurrentStatus(); !got.Available || !got.Stored {
		t.Errorf("stored keyring status = %+v", got)
	}
}

func TestKeyringUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus not running"))
	defer gokeyring.MockInit()

	_, err := GetConnectionString()
	if !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrKeyringUnavailable)
	}
	if st := CurrentStatus(); st.Available || st.Err == nil || st.Stored {
		t.Errorf("CurrentStatus() = %+v, want an error", st)
	}
}
