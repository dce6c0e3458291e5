package extract

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
)

var _ Extractor = Email{}

// Email extracts the headers and body of an RFC 822 message.
type Email struct{}

// Extensions returns the handled extensions.
func (Email) Extensions() []string {
	return []string{"eml"}
}

// Extract prefers plain text parts over HTML ones. The subject is the title.
func (Email) Extract(data []byte) (*Result, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(data))
	if err != nil {
		return nil, invalid("email", err)
	}

	subject := decodeHeader(msg.Header.Get("Subject"))
	body, err := messageBody(msg.Header.Get("Content-Type"), msg.Body)
	if err != nil {
		return nil, invalid("email", err)
	}

	var b strings.Builder
	for _, h := range []struct{ name, value string }{
		{"From", decodeHeader(msg.Header.Get("From"))},
		{"To", decodeHeader(msg.Header.Get("To"))},
		{"Date", msg.Header.Get("Date")},
		{"Subject", subject},
	} {
		if h.value != "" {
			b.WriteString(h.name + ": " + h.value + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(body)

	return &Result{Title: subject, Text: strings.TrimSpace(b.String())}, nil
}

// decodeHeader decodes RFC 2047 words, keeping the raw value on failure.
func decodeHeader(value string) string {
	if value == "" {
		return ""
	}
	decoded, err := new(mime.WordDecoder).DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

func messageBody(contentType string, r io.Reader) (string, error) {
	if contentType == "" {
		contentType = "text/plain"
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		body, readErr := io.ReadAll(r)
		return string(body), readErr
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return multipartBody(r, params["boundary"])
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if mediaType == "text/html" {
		res, err := HTML{}.Extract(body)
		if err != nil {
			return "", err
		}
		return res.Text, nil
	}
	return string(body), nil
}

func multipartBody(r io.Reader, boundary string) (string, error) {
	if boundary == "" {
		return "", errors.New("multipart message without boundary")
	}

	var plain, rich []string
	mr := multipart.NewReader(r, boundary)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		partType := part.Header.Get("Content-Type")
		mediaType, _, _ := mime.ParseMediaType(partType)
		if mediaType != "text/plain" && mediaType != "text/html" && !strings.HasPrefix(mediaType, "multipart/") {
			part.Close()
			continue
		}

		text, err := messageBody(partType, part)
		part.Close()
		if err != nil {
			continue
		}
		if mediaType == "text/html" {
			rich = append(rich, text)
		} else {
			plain = append(plain, text)
		}
	}

	if len(plain) > 0 {
		return strings.Join(plain, "\n"), nil
	}
	return strings.Join(rich, "\n"), nil
}
