package mailer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendTimesheet(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody rawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", "reports@timeos.test", testLogger())
	err := c.SendTimesheet(context.Background(), "billing@acme.test", "Work Hours Report", "<html></html>")
	if err != nil {
		t.Fatalf("SendTimesheet: %v", err)
	}
	if gotPath != "/v1/send" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotBody.From != "reports@timeos.test" || gotBody.To != "billing@acme.test" {
		t.Fatalf("addresses = %+v", gotBody)
	}
	if gotBody.Subject != "Work Hours Report" || gotBody.HTMLBody != "<html></html>" {
		t.Fatalf("payload = %+v", gotBody)
	}
}

func TestSendTimesheetErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		c := NewClient("", "", "from@x.test", testLogger())
		if err := c.SendTimesheet(context.Background(), "to@x.test", "s", "b"); err == nil {
			t.Fatal("no error without configuration")
		}
	})

	t.Run("missing recipient", func(t *testing.T) {
		c := NewClient("http://unused.invalid", "secret", "from@x.test", testLogger())
		if err := c.SendTimesheet(context.Background(), "", "s", "b"); err == nil {
			t.Fatal("no error without recipient")
		}
	})

	t.Run("server rejects", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad address", http.StatusUnprocessableEntity)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "secret", "from@x.test", testLogger())
		err := c.SendTimesheet(context.Background(), "to@x.test", "s", "b")
		if err == nil || !strings.Contains(err.Error(), "422") {
			t.Fatalf("err = %v", err)
		}
	})
}
