package onboarding

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/saeid-a/FitJourney/internal/catalog"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func waitTicket(t *testing.T, ticket *PhotoTicket) error {
	t.Helper()
	select {
	case <-ticket.Done():
		return ticket.Err()
	case <-time.After(2 * time.Second):
		t.Fatal("photo decode did not resolve")
		return nil
	}
}

func TestUploadPhotoRejectsNonImagesAndLargeFiles(t *testing.T) {
	c := newTestController(t)

	if _, err := c.UploadPhoto(PhotoUpload{Data: []byte("%PDF"), MIMEType: "application/pdf", Size: 4}); !errors.Is(err, ErrPhotoType) {
		t.Fatalf("expected ErrPhotoType, got %v", err)
	}
	if _, err := c.UploadPhoto(PhotoUpload{Data: pngHeader, MIMEType: "image/png", Size: MaxPhotoBytes + 1}); !errors.Is(err, ErrPhotoTooLarge) {
		t.Fatalf("expected ErrPhotoTooLarge, got %v", err)
	}
	if c.PhotoStatus().State != PhotoIdle {
		t.Fatalf("expected idle photo status, got %+v", c.PhotoStatus())
	}
	if c.Profile().Biometrics.PhotoDataURI != nil {
		t.Fatal("expected no photo on profile")
	}
}

func TestUploadPhotoAcceptsExactlyFiveMiB(t *testing.T) {
	if err := validatePhoto(PhotoUpload{MIMEType: "image/jpeg", Size: MaxPhotoBytes}); err != nil {
		t.Fatalf("expected 5MiB to be accepted, got %v", err)
	}
}

func TestUploadPhotoStoresDataURI(t *testing.T) {
	listener := &recordingListener{}
	c := newTestController(t, WithListener(listener))
	toBiometrics(t, c)
	listener.changes = nil

	ticket, err := c.UploadPhoto(PhotoUpload{Data: pngHeader, MIMEType: "image/png", Size: int64(len(pngHeader))})
	if err != nil {
		t.Fatalf("UploadPhoto: %v", err)
	}
	if err := waitTicket(t, ticket); err != nil {
		t.Fatalf("decode: %v", err)
	}

	uri := c.Profile().Biometrics.PhotoDataURI
	if uri == nil || !strings.HasPrefix(*uri, "data:image/png;base64,") {
		t.Fatalf("unexpected data uri %v", uri)
	}
	if c.Step() != StepBiometrics {
		t.Fatalf("photo upload must not advance the step, got %s", c.Step())
	}
	if s := c.PhotoStatus(); s.State != PhotoReady || s.UploadID != ticket.ID() {
		t.Fatalf("unexpected status %+v", s)
	}
	if len(listener.changes) != 1 || listener.changes[0].Kind != ProfileChanged {
		t.Fatalf("expected one profile change, got %+v", listener.changes)
	}
}

func TestUploadPhotoDecodeFailureLeavesPriorPhoto(t *testing.T) {
	c := newTestController(t)

	first, err := c.UploadPhoto(PhotoUpload{Data: pngHeader, MIMEType: "image/png", Size: int64(len(pngHeader))})
	if err != nil {
		t.Fatalf("UploadPhoto: %v", err)
	}
	if err := waitTicket(t, first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	prior := *c.Profile().Biometrics.PhotoDataURI

	bad, err := c.UploadPhoto(PhotoUpload{Data: []byte("plain text, not an image"), MIMEType: "image/png", Size: 24})
	if err != nil {
		t.Fatalf("UploadPhoto: %v", err)
	}
	if err := waitTicket(t, bad); !errors.Is(err, ErrPhotoDecode) {
		t.Fatalf("expected ErrPhotoDecode, got %v", err)
	}
	if got := *c.Profile().Biometrics.PhotoDataURI; got != prior {
		t.Fatal("failed decode replaced the previous photo")
	}
	if s := c.PhotoStatus(); s.State != PhotoFailed || s.Error == "" {
		t.Fatalf("expected failed status with message, got %+v", s)
	}
}

func TestOnlyLatestInitiatedUploadLands(t *testing.T) {
	releaseFirst := make(chan struct{})
	decoder := func(ctx context.Context, data []byte, mimeType string) (string, error) {
		if bytes.Equal(data, []byte("first")) {
			<-releaseFirst
			return "data:image/png;base64,Zmlyc3Q=", nil
		}
		return "data:image/png;base64,c2Vjb25k", nil
	}
	c := newTestController(t, WithPhotoDecoder(decoder))

	first, err := c.UploadPhoto(PhotoUpload{Data: []byte("first"), MIMEType: "image/png", Size: 5})
	if err != nil {
		t.Fatalf("UploadPhoto first: %v", err)
	}
	second, err := c.UploadPhoto(PhotoUpload{Data: []byte("second"), MIMEType: "image/png", Size: 6})
	if err != nil {
		t.Fatalf("UploadPhoto second: %v", err)
	}
	if err := waitTicket(t, second); err != nil {
		t.Fatalf("second decode: %v", err)
	}

	// The first decode resolves after the second; it must not overwrite it.
	close(releaseFirst)
	if err := waitTicket(t, first); !errors.Is(err, ErrPhotoSuperseded) {
		t.Fatalf("expected ErrPhotoSuperseded, got %v", err)
	}
	if got := *c.Profile().Biometrics.PhotoDataURI; got != "data:image/png;base64,c2Vjb25k" {
		t.Fatalf("expected second upload to win, got %q", got)
	}
	if s := c.PhotoStatus(); s.UploadID != second.ID() || s.State != PhotoReady {
		t.Fatalf("unexpected status %+v", s)
	}
}

func TestNewUploadCancelsPendingDecode(t *testing.T) {
	cancelled := make(chan struct{})
	decoder := func(ctx context.Context, data []byte, mimeType string) (string, error) {
		if bytes.Equal(data, []byte("slow")) {
			<-ctx.Done()
			close(cancelled)
			return "", ctx.Err()
		}
		return "data:image/gif;base64,ZmFzdA==", nil
	}
	c := newTestController(t, WithPhotoDecoder(decoder))

	slow, err := c.UploadPhoto(PhotoUpload{Data: []byte("slow"), MIMEType: "image/gif", Size: 4})
	if err != nil {
		t.Fatalf("UploadPhoto slow: %v", err)
	}
	fast, err := c.UploadPhoto(PhotoUpload{Data: []byte("fast"), MIMEType: "image/gif", Size: 4})
	if err != nil {
		t.Fatalf("UploadPhoto fast: %v", err)
	}

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("pending decode was not cancelled")
	}
	if err := waitTicket(t, slow); !errors.Is(err, ErrPhotoSuperseded) {
		t.Fatalf("expected ErrPhotoSuperseded, got %v", err)
	}
	if err := waitTicket(t, fast); err != nil {
		t.Fatalf("fast decode: %v", err)
	}
}

func TestResetDiscardsPendingUpload(t *testing.T) {
	release := make(chan struct{})
	decoder := func(ctx context.Context, data []byte, mimeType string) (string, error) {
		<-release
		return "data:image/png;base64,eA==", nil
	}
	c := newTestController(t, WithPhotoDecoder(decoder))

	ticket, err := c.UploadPhoto(PhotoUpload{Data: []byte("x"), MIMEType: "image/png", Size: 1})
	if err != nil {
		t.Fatalf("UploadPhoto: %v", err)
	}
	c.ResetProfile()
	close(release)

	if err := waitTicket(t, ticket); !errors.Is(err, ErrPhotoSuperseded) {
		t.Fatalf("expected ErrPhotoSuperseded, got %v", err)
	}
	if c.Profile().Biometrics.PhotoDataURI != nil {
		t.Fatal("stale upload landed after reset")
	}
}

func TestCloseStopsPendingDecodes(t *testing.T) {
	decoder := func(ctx context.Context, data []byte, mimeType string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}
	c := New(catalog.MustDefault(), DefaultState(), WithPhotoDecoder(decoder))

	if _, err := c.UploadPhoto(PhotoUpload{Data: []byte("x"), MIMEType: "image/png", Size: 1}); err != nil {
		t.Fatalf("UploadPhoto: %v", err)
	}
	c.Close()

	if _, err := c.UploadPhoto(PhotoUpload{Data: []byte("x"), MIMEType: "image/png", Size: 1}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestEncodeDataURI(t *testing.T) {
	uri, err := EncodeDataURI(context.Background(), pngHeader, "image/png")
	if err != nil {
		t.Fatalf("EncodeDataURI: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,iVBORw0KGgo") {
		t.Fatalf("unexpected uri %q", uri)
	}

	if _, err := EncodeDataURI(context.Background(), nil, "image/png"); err == nil {
		t.Fatal("expected empty data to fail")
	}
	if _, err := EncodeDataURI(context.Background(), []byte("<svg xmlns='http://www.w3.org/2000/svg'/>"), "image/svg+xml"); err != nil {
		t.Fatalf("expected svg to be accepted, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := EncodeDataURI(ctx, pngHeader, "image/png"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
