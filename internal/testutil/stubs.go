// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
)

// TinyPNG returns an in-memory PNG byte slice with the requested dimensions.
func TinyPNG(t interface {
	Helper()
	Fatalf(string, ...any)
}, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// StoreStub is an in-memory image store for tests. It records saved
// payloads and deleted references.
type StoreStub struct {
	nextID  int
	Saved   map[string][]byte
	Deleted []string
	SaveErr error
}

// NewStoreStub creates an empty in-memory image store.
func NewStoreStub() *StoreStub {
	return &StoreStub{Saved: make(map[string][]byte)}
}

// Save records the payload under a generated reference.
func (s *StoreStub) Save(_ context.Context, content []byte, _ string) (string, error) {
	if s.SaveErr != nil {
		return "", s.SaveErr
	}
	s.nextID++
	ref := fmt.Sprintf("stub-image-%d", s.nextID)
	s.Saved[ref] = content
	return ref, nil
}

// Delete records the reference as removed.
func (s *StoreStub) Delete(_ context.Context, ref string) error {
	delete(s.Saved, ref)
	s.Deleted = append(s.Deleted, ref)
	return nil
}

// Path resolves a stub reference.
func (s *StoreStub) Path(ref string) string {
	return "/tmp/" + ref
}

// MailerStub records sent messages for assertions.
type MailerStub struct {
	Sent []SentMail
	Err  error
}

// SentMail is one recorded message.
type SentMail struct {
	Recipient string
	Subject   string
	Body      string
}

// Send records the message.
func (m *MailerStub) Send(_ context.Context, recipient, subject, body string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{Recipient: recipient, Subject: subject, Body: body})
	return nil
}
