package onboarding

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/saeid-a/FitJourney/internal/models"
)

// MaxPhotoBytes caps an upload before encoding.
const MaxPhotoBytes = 5 * 1024 * 1024

// PhotoDecoder turns raw upload bytes into a self-contained display value.
type PhotoDecoder func(ctx context.Context, data []byte, mimeType string) (string, error)

type PhotoUpload struct {
	Data     []byte
	MIMEType string
	Size     int64
}

type PhotoState string

const (
	PhotoIdle    PhotoState = "idle"
	PhotoPending PhotoState = "pending"
	PhotoReady   PhotoState = "ready"
	PhotoFailed  PhotoState = "failed"
)

type PhotoStatus struct {
	UploadID uint64     `json:"upload_id"`
	State    PhotoState `json:"state"`
	Error    string     `json:"error,omitempty"`
}

// PhotoTicket tracks one upload. Done closes once the decode has resolved,
// whether it was applied, failed or discarded as stale.
type PhotoTicket struct {
	id   uint64
	done chan struct{}
	err  error
}

func (t *PhotoTicket) ID() uint64 { return t.id }

func (t *PhotoTicket) Done() <-chan struct{} { return t.done }

// Err is only meaningful after Done is closed.
func (t *PhotoTicket) Err() error {
	<-t.done
	return t.err
}

type photoTracker struct {
	baseCtx    context.Context
	cancelBase context.CancelFunc
	decode     PhotoDecoder
	wg         sync.WaitGroup
	closed     bool

	latest uint64
	cancel context.CancelFunc
	status PhotoStatus
}

// resetLocked cancels the pending upload, if any, and makes every in-flight
// result stale.
func (p *photoTracker) resetLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.latest++
	p.status = PhotoStatus{UploadID: p.latest, State: PhotoIdle}
}

func validatePhoto(up PhotoUpload) error {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(up.MIMEType)), "image/") {
		return ErrPhotoType
	}
	if up.Size > MaxPhotoBytes || int64(len(up.Data)) > MaxPhotoBytes {
		return ErrPhotoTooLarge
	}
	return nil
}

// UploadPhoto validates the upload synchronously and decodes it in the
// background. Only the most recently started upload may land on the
// profile: starting a new one cancels the previous decode, and a result
// whose upload is no longer the latest is discarded.
func (c *Controller) UploadPhoto(up PhotoUpload) (*PhotoTicket, error) {
	if err := validatePhoto(up); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := &c.photos
	if p.closed {
		return nil, ErrClosed
	}
	if p.cancel != nil {
		p.cancel()
	}
	p.latest++
	ctx, cancel := context.WithCancel(p.baseCtx)
	p.cancel = cancel
	p.status = PhotoStatus{UploadID: p.latest, State: PhotoPending}

	ticket := &PhotoTicket{id: p.latest, done: make(chan struct{})}
	data := append([]byte(nil), up.Data...)
	mimeType := strings.TrimSpace(up.MIMEType)
	decode := p.decode

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer close(ticket.done)
		defer cancel()

		uri, err := decode(ctx, data, mimeType)
		ticket.err = c.resolvePhoto(ticket.id, uri, err)
	}()

	return ticket, nil
}

func (c *Controller) resolvePhoto(id uint64, uri string, decodeErr error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := &c.photos
	if id != p.latest {
		return ErrPhotoSuperseded
	}
	p.cancel = nil
	if decodeErr != nil {
		p.status = PhotoStatus{UploadID: id, State: PhotoFailed, Error: ErrPhotoDecode.Error()}
		return fmt.Errorf("%w: %w", ErrPhotoDecode, decodeErr)
	}
	c.profile.Biometrics.PhotoDataURI = models.Ptr(uri)
	p.status = PhotoStatus{UploadID: id, State: PhotoReady}
	c.emitLocked(ProfileChanged)
	return nil
}

func (c *Controller) PhotoStatus() PhotoStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.photos.status
	if s.State == "" {
		s.State = PhotoIdle
	}
	return s
}

// Close cancels pending decodes and waits for their goroutines to exit.
func (c *Controller) Close() {
	c.mu.Lock()
	c.photos.closed = true
	c.photos.cancelBase()
	c.mu.Unlock()

	c.photos.wg.Wait()
}

var errNotAnImage = errors.New("content is not an image")

// EncodeDataURI embeds the bytes as a base64 data URI. The content is
// sniffed so a mislabelled non-image fails here rather than at display time.
func EncodeDataURI(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New("empty image")
	}
	sniffed := http.DetectContentType(data)
	if !strings.HasPrefix(sniffed, "image/") && !strings.EqualFold(mimeType, "image/svg+xml") {
		return "", fmt.Errorf("%w: detected %s", errNotAnImage, sniffed)
	}

	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mimeType) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mimeType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}
