package main

import (
	"flag"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/client"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/field"
)

// Command-line flags for the viewer.
var (
	// serverFlag is the base URL of the upload server.
	serverFlag = flag.String("server", client.DefaultBaseURL, "base URL of the upload server")

	// fileFlag is the audio file uploaded on start and when U is pressed.
	fileFlag = flag.String("file", "", "WAV or MP3 file to upload")

	// framesFlag asks the server for pre-rendered visualization frames
	// instead of drawing the field locally.
	framesFlag = flag.Bool("frames", false, "request server-rendered frames")

	// recordDefaultPGO orbits the camera randomly while capturing default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "orbit randomly for 15s while capturing default.pgo")

	// debugFlag enables the FPS and field timing overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and field update overlay")

	// enableAudioFlag plays the uploaded file locally alongside the cursor.
	enableAudioFlag = flag.Bool("enable-audio", false, "play the uploaded file through the speakers")

	// openCLFlag evaluates the field on an OpenCL device when built with -tags opencl.
	openCLFlag = flag.Bool("opencl", false, "evaluate the field with OpenCL (requires -tags opencl)")

	// headlessFlag uploads without opening a window and prints a terminal summary.
	headlessFlag = flag.Bool("headless", false, "upload, print an ASCII waveform and exit")

	// outDirFlag is where headless mode writes server-rendered frames.
	outDirFlag = flag.String("out", "frames", "directory for frames written in headless mode")

	radialStepsFlag  = flag.Int("radial-steps", field.DefaultRadialSteps, "lattice samples along the radius")
	azimuthStepsFlag = flag.Int("azimuth-steps", field.DefaultAzimuthSteps, "lattice samples around the azimuth")
	polarStepsFlag   = flag.Int("polar-steps", field.DefaultPolarSteps, "lattice samples along the polar angle")
)
