// Package client uploads audio files to the visualizer server and decodes
// its replies.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mitchellh/go-homedir"
)

// DefaultBaseURL is where the server listens out of the box.
const DefaultBaseURL = "http://localhost:5000"

const uploadField = "audio"

var (
	// ErrNoFile is returned when Upload is called without a path or the
	// file does not exist.
	ErrNoFile = errors.New("no file selected")
	// ErrMalformedResponse is returned when a 200 reply carries neither
	// samples nor frames.
	ErrMalformedResponse = errors.New("malformed upload response")
)

// StatusError is a non-2xx reply. Message holds the server's error text
// when the body had one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upload failed: %s", http.StatusText(e.Code))
	}
	return fmt.Sprintf("upload failed (%d): %s", e.Code, e.Message)
}

// Kind tells which payload a response carries.
type Kind int

const (
	KindNone Kind = iota
	KindSamples
	KindFrames
)

func (k Kind) String() string {
	switch k {
	case KindSamples:
		return "samples"
	case KindFrames:
		return "frames"
	default:
		return "none"
	}
}

// Response is the decoded reply of a successful upload. Unknown fields are
// ignored so older and newer servers both decode.
type Response struct {
	Message             string    `json:"message"`
	Filename            string    `json:"filename"`
	AudioData           []float64 `json:"audioData"`
	Duration            float64   `json:"duration"`
	SampleRate          int       `json:"sampleRate"`
	PeakFrequency       float64   `json:"peakFrequency"`
	VisualizationFrames []string  `json:"visualizationFrames"`
	AudioPlot           string    `json:"audioPlot"`
}

// Kind reports frames when any are present, otherwise samples when present.
func (r *Response) Kind() Kind {
	switch {
	case len(r.VisualizationFrames) > 0:
		return KindFrames
	case len(r.AudioData) > 0:
		return KindSamples
	default:
		return KindNone
	}
}

// Client talks to one server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Frames asks the server to pre-render visualization frames.
	Frames bool
}

// New returns a client for baseURL with a bounded request timeout.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 2 * time.Minute},
	}
}

// Upload posts the file at path to /upload and decodes the reply.
func (c *Client) Upload(ctx context.Context, path string) (*Response, error) {
	if path == "" {
		return nil, ErrNoFile
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", path, err)
	}
	path = expanded
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrNoFile, err)
	}
	if err != nil {
		return nil, fmt.Errorf("opening audio file: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(c.writeForm(mw, f, filepath.Base(path)))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/upload", pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", filepath.Base(path), err)
	}
	defer res.Body.Close()
	return decodeResponse(res)
}

func (c *Client) writeForm(mw *multipart.Writer, src io.Reader, name string) error {
	if c.Frames {
		if err := mw.WriteField("frames", strconv.FormatBool(true)); err != nil {
			return err
		}
	}
	part, err := mw.CreateFormFile(uploadField, name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return err
	}
	return mw.Close()
}

func decodeResponse(res *http.Response) (*Response, error) {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading upload response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &e)
		return nil, &StatusError{Code: res.StatusCode, Message: e.Error}
	}
	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.Kind() == KindNone {
		return nil, ErrMalformedResponse
	}
	return &out, nil
}
