package gcs

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func staticTokenClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	return &Client{
		defaultBucket: "bucket",
		storageBase:   storageAPIBase,
		uploadBase:    uploadAPIBase,
		tokenSource: &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
			return "token", time.Now().Add(time.Hour), nil
		}},
		httpClient: &http.Client{Transport: rt},
	}
}

func TestUploadObjectSuccess(t *testing.T) {
	t.Parallel()

	var gotURL, gotBody string
	client := staticTokenClient(t, func(req *http.Request) *http.Response {
		if req.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", req.Method)
		}
		if req.Header.Get("Authorization") != "Bearer token" {
			t.Fatalf("unexpected auth %s", req.Header.Get("Authorization"))
		}
		if req.Header.Get("Content-Type") != "image/jpeg" {
			t.Fatalf("unexpected content type %s", req.Header.Get("Content-Type"))
		}
		gotURL = req.URL.String()
		b, _ := io.ReadAll(req.Body)
		gotBody = string(b)
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{}`)),
			Header:     http.Header{},
		}
	})

	err := client.UploadObject(context.Background(), "", "pid/123.jpg", "image/jpeg", []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("UploadObject: %v", err)
	}
	if !strings.Contains(gotURL, "uploadType=media") || !strings.Contains(gotURL, "name=pid%2F123.jpg") {
		t.Fatalf("unexpected upload url %s", gotURL)
	}
	if gotBody != "jpeg-bytes" {
		t.Fatalf("body not forwarded, got %q", gotBody)
	}
}

func TestUploadObjectFailure(t *testing.T) {
	t.Parallel()

	client := staticTokenClient(t, func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: http.StatusForbidden,
			Body:       io.NopCloser(strings.NewReader("denied")),
			Header:     http.Header{},
		}
	})

	err := client.UploadObject(context.Background(), "bucket", "key", "image/png", nil)
	if err == nil {
		t.Fatal("expected upload error")
	}
	if !strings.Contains(err.Error(), "denied") {
		t.Fatalf("expected body in error, got %v", err)
	}
}

func TestDeleteObjectSuccess(t *testing.T) {
	t.Parallel()

	client := staticTokenClient(t, func(req *http.Request) *http.Response {
		if req.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", req.Method)
		}
		if req.Header.Get("Authorization") != "Bearer token" {
			t.Fatalf("unexpected auth %s", req.Header.Get("Authorization"))
		}
		return &http.Response{
			StatusCode: http.StatusNoContent,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     http.Header{},
		}
	})

	if err := client.DeleteObject(context.Background(), "bucket", "pid/file.jpg"); err != nil {
		t.Fatalf("DeleteObject: %v", err)
	}
}

func TestDeleteObjectNotFound(t *testing.T) {
	t.Parallel()

	client := staticTokenClient(t, func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     http.Header{},
		}
	})

	if err := client.DeleteObject(context.Background(), "bucket", "pid/file.jpg"); err != nil {
		t.Fatalf("DeleteObject not found should succeed: %v", err)
	}
}

func TestPublicURL(t *testing.T) {
	t.Parallel()

	client := &Client{defaultBucket: "bucket"}
	if got := client.PublicURL("", "pid/1.jpg"); got != "https://storage.googleapis.com/bucket/pid/1.jpg" {
		t.Fatalf("unexpected public url %s", got)
	}

	client.publicBaseURL = "https://cdn.lumina.co"
	if got := client.PublicURL("", "pid/1.jpg"); got != "https://cdn.lumina.co/pid/1.jpg" {
		t.Fatalf("unexpected cdn url %s", got)
	}
}

func TestSignedReadURL(t *testing.T) {
	t.Parallel()

	key := mustGenerateKey(t)
	client := &Client{
		defaultBucket: "bucket",
		serviceAccount: &serviceAccountInfo{
			clientEmail: "signer@example.com",
			privateKey:  key,
		},
	}

	object := "pid/file.jpg"
	urlStr, err := client.SignedReadURL("bucket", object, 5*time.Minute)
	if err != nil {
		t.Fatalf("SignedReadURL returned error: %v", err)
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		t.Fatalf("parse signed read url: %v", err)
	}

	values := parsed.Query()
	expireParam := values.Get("Expires")
	if expireParam == "" {
		t.Fatal("Expires missing")
	}
	if _, err := strconv.ParseInt(expireParam, 10, 64); err != nil {
		t.Fatalf("parse expires: %v", err)
	}
	signature := values.Get("Signature")
	if signature == "" {
		t.Fatal("signature missing")
	}

	data := []byte("GET\n\n\n" + expireParam + "\n/" + "bucket" + "/" + object)
	hash := sha256.Sum256(data)

	rawSig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}
	if err := rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, hash[:], rawSig); err != nil {
		t.Fatalf("verify read signature: %v", err)
	}
}

func TestSignedReadURLErrors(t *testing.T) {
	t.Parallel()

	client := &Client{
		defaultBucket: "bucket",
		serviceAccount: &serviceAccountInfo{
			clientEmail: "signer@example.com",
			privateKey:  mustGenerateKey(t),
		},
	}

	cases := []struct {
		name    string
		bucket  string
		object  string
		expires time.Duration
	}{
		{"missing object", "bucket", "", time.Minute},
		{"negative ttl", "bucket", "object", -time.Minute},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := client.SignedReadURL(tc.bucket, tc.object, tc.expires); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}

	emptyClient := &Client{}
	if _, err := emptyClient.SignedReadURL("bucket", "object", time.Minute); err == nil {
		t.Fatal("expected error without service account")
	}
}

func mustGenerateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	return key
}
