package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/audio"
)

// uploadField is the multipart field carrying the audio file.
const uploadField = "audio"

// UploadResponse is the JSON body of a successful upload.
type UploadResponse struct {
	Message             string    `json:"message"`
	Filename            string    `json:"filename"`
	AudioData           []float64 `json:"audioData"`
	Duration            float64   `json:"duration"`
	SampleRate          int       `json:"sampleRate"`
	PeakFrequency       float64   `json:"peakFrequency"`
	VisualizationFrames []string  `json:"visualizationFrames,omitempty"`
	AudioPlot           string    `json:"audioPlot,omitempty"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		log.Printf("Upload rejected: %v", err)
		writeJSONError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		// A file input left empty arrives as a plain value with filename="".
		if _, ok := r.MultipartForm.Value[uploadField]; ok {
			writeJSONError(w, http.StatusBadRequest, "No selected file")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeJSONError(w, http.StatusBadRequest, "No selected file")
		return
	}
	ext := strings.TrimPrefix(filepath.Ext(header.Filename), ".")
	if !audio.Supported(ext) {
		writeJSONError(w, http.StatusBadRequest, "File type not allowed")
		return
	}

	name := secureFilename(header.Filename)
	path, err := s.saveUpload(file, name)
	if err != nil {
		log.Printf("Error saving file: %v", err)
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Error saving file: %v", err))
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Printf("Error removing %s: %v", path, err)
		}
	}()

	withFrames := s.cfg.AlwaysFrames
	if v := r.FormValue("frames"); v != "" {
		withFrames, _ = strconv.ParseBool(v)
	}
	resp, err := s.process(path, name, ext, withFrames)
	if err != nil {
		log.Printf("Error processing %s: %v", name, err)
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing file: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) saveUpload(src io.Reader, name string) (string, error) {
	path := filepath.Join(s.cfg.UploadDir, name)
	f, err := os.CreateTemp(s.cfg.UploadDir, "*-"+name)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return f.Name(), nil
}

func (s *Server) process(path, name, ext string, withFrames bool) (*UploadResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf, err := audio.Decode(f, ext)
	if err != nil {
		return nil, err
	}
	log.Printf("Audio loaded: %d samples, %dHz", len(buf.Samples), buf.SampleRate)

	resp := &UploadResponse{
		Message:       "File uploaded successfully",
		Filename:      name,
		AudioData:     audio.Downsample(buf.Samples, s.cfg.WaveformPoints),
		Duration:      buf.Duration,
		SampleRate:    buf.SampleRate,
		PeakFrequency: audio.ComputeSpectrum(buf.Samples, buf.SampleRate).PeakFrequency(),
	}
	if !withFrames {
		return resp, nil
	}
	frames, err := RenderFrames(buf, FrameOptions{
		Count:  s.cfg.FrameCount,
		Width:  s.cfg.FrameWidth,
		Height: s.cfg.FrameHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering frames: %w", err)
	}
	plot, err := RenderPlot(buf, s.cfg.PlotWidth, s.cfg.PlotHeight)
	if err != nil {
		return nil, fmt.Errorf("rendering waveform plot: %w", err)
	}
	log.Printf("Generated %d frames", len(frames))
	resp.VisualizationFrames = frames
	resp.AudioPlot = plot
	return resp, nil
}

// secureFilename reduces a client supplied name to a safe base name made of
// letters, digits, dots, dashes and underscores.
func secureFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	out := strings.TrimLeft(b.String(), "._")
	if out == "" {
		return "upload"
	}
	return out
}
