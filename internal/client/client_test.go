package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUploadSendsMultipartFile(t *testing.T) {
	var gotName, gotBody, gotFrames string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		f, h, err := r.FormFile("audio")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		gotName, gotBody, gotFrames = h.Filename, string(b), r.FormValue("frames")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":"ok","audioData":[0,0.5,-1],"duration":1.5,"extra":true}`)
	}))
	defer ts.Close()

	c := New(ts.URL)
	res, err := c.Upload(context.Background(), writeFile(t, "clip.wav", "RIFF"))
	if err != nil {
		t.Fatal(err)
	}
	if gotName != "clip.wav" || gotBody != "RIFF" || gotFrames != "" {
		t.Fatalf("server saw name=%q body=%q frames=%q", gotName, gotBody, gotFrames)
	}
	if res.Kind() != KindSamples || len(res.AudioData) != 3 || res.Duration != 1.5 {
		t.Fatalf("unexpected response %+v", res)
	}
}

func TestUploadFrames(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("frames") != "true" {
			t.Errorf("frames flag not sent")
		}
		io.WriteString(w, `{"visualizationFrames":["a","b"],"audioPlot":"c","audioData":[1]}`)
	}))
	defer ts.Close()

	c := New(ts.URL)
	c.Frames = true
	res, err := c.Upload(context.Background(), writeFile(t, "clip.mp3", "ID3"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind() != KindFrames || len(res.VisualizationFrames) != 2 {
		t.Fatalf("unexpected response %+v", res)
	}
}

func TestUploadErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, h, _ := r.FormFile("audio")
		if f != nil {
			f.Close()
		}
		switch h.Filename {
		case "bad.txt":
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":"File type not allowed"}`)
		case "crash.wav":
			w.WriteHeader(http.StatusBadGateway)
			io.WriteString(w, `<html>oops</html>`)
		case "empty.wav":
			io.WriteString(w, `{"message":"ok"}`)
		default:
			io.WriteString(w, `not json`)
		}
	}))
	defer ts.Close()
	c := New(ts.URL)
	ctx := context.Background()

	if _, err := c.Upload(ctx, ""); !errors.Is(err, ErrNoFile) {
		t.Fatalf("empty path: %v", err)
	}
	if _, err := c.Upload(ctx, filepath.Join(t.TempDir(), "missing.wav")); !errors.Is(err, ErrNoFile) {
		t.Fatalf("missing file: %v", err)
	}

	_, err := c.Upload(ctx, writeFile(t, "bad.txt", "x"))
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadRequest || se.Message != "File type not allowed" {
		t.Fatalf("bad.txt: %v", err)
	}
	_, err = c.Upload(ctx, writeFile(t, "crash.wav", "x"))
	if !errors.As(err, &se) || se.Code != http.StatusBadGateway || se.Message != "" {
		t.Fatalf("crash.wav: %v", err)
	}
	if _, err := c.Upload(ctx, writeFile(t, "empty.wav", "x")); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("empty.wav: %v", err)
	}
	if _, err := c.Upload(ctx, writeFile(t, "junk.wav", "x")); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("junk.wav: %v", err)
	}
}

func TestUploadCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"audioData":[1]}`)
	}))
	defer ts.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(ts.URL).Upload(ctx, writeFile(t, "a.wav", "x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
