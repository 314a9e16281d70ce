package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/client"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/surface"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/waveform"
)

type uploadResult struct {
	path   string
	resp   *client.Response
	frames []image.Image
	err    error
}

// uploader runs one upload at a time off the game loop. Results are picked
// up by poll from Update.
type uploader struct {
	client  *client.Client
	results chan uploadResult
	busy    bool
}

func newUploader(c *client.Client) *uploader {
	return &uploader{client: c, results: make(chan uploadResult, 1)}
}

// start begins uploading path and reports false when an upload is already
// in flight.
func (u *uploader) start(path string) bool {
	if u.busy {
		return false
	}
	u.busy = true
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		defer cancel()
		res := uploadResult{path: path}
		res.resp, res.err = u.client.Upload(ctx, path)
		if res.err == nil && res.resp.Kind() == client.KindFrames {
			res.frames, res.err = decodeFrames(res.resp.VisualizationFrames)
		}
		u.results <- res
	}()
	return true
}

func (u *uploader) poll() (uploadResult, bool) {
	select {
	case res := <-u.results:
		u.busy = false
		return res, true
	default:
		return uploadResult{}, false
	}
}

func decodeFrames(encoded []string) ([]image.Image, error) {
	frames := make([]image.Image, 0, len(encoded))
	for i, s := range encoded {
		img, err := surface.DecodeBase64PNG(s)
		if err != nil {
			return nil, fmt.Errorf("%w: frame %d: %v", client.ErrMalformedResponse, i, err)
		}
		frames = append(frames, img)
	}
	return frames, nil
}

// uploadStatus turns an upload error into the line shown in the status bar.
func uploadStatus(err error) string {
	var se *client.StatusError
	switch {
	case errors.Is(err, client.ErrNoFile):
		return "Please select a file first (-file)"
	case errors.As(err, &se) && se.Message != "":
		return "Upload failed: " + se.Message
	case errors.As(err, &se):
		return fmt.Sprintf("Upload failed: HTTP %d", se.Code)
	case errors.Is(err, client.ErrMalformedResponse):
		return "Upload failed: unexpected server response"
	default:
		return "Upload failed: " + err.Error()
	}
}

// beginUpload kicks off an upload of the -file path.
func (g *Game) beginUpload() {
	if *fileFlag == "" {
		g.setStatus(uploadStatus(client.ErrNoFile))
		return
	}
	if !g.uploader.start(*fileFlag) {
		return
	}
	g.setStatus("Uploading " + *fileFlag + "...")
}

// applyUpload installs a finished upload. Failures leave the previous
// waveform and frames in place.
func (g *Game) applyUpload(res uploadResult) {
	if res.err != nil {
		log.Printf("Upload of %s failed: %v", res.path, res.err)
		g.setStatus(uploadStatus(res.err))
		return
	}
	resp := res.resp
	g.waveform = resp.AudioData
	g.duration = resp.Duration
	for _, img := range g.frames {
		img.Deallocate()
	}
	g.frames = g.frames[:0]
	for _, img := range res.frames {
		g.frames = append(g.frames, ebiten.NewImageFromImage(img))
	}
	g.transport.Load(resp.Duration)
	g.loadLocalAudio(res.path)

	mode := "live field"
	if len(g.frames) > 0 {
		mode = fmt.Sprintf("%d frames", len(g.frames))
	}
	g.setStatus(fmt.Sprintf("Loaded %s (%s, %s)", resp.Filename, waveform.FormatTime(resp.Duration), mode))
}
