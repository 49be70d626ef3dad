package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/klauspost/cpuid/v2"

	"github.com/softras/softras/pkg/render"
)

// frameLog appends framerate samples to a per-CPU, per-format file so runs
// on different machines can be compared.
type frameLog struct {
	file *os.File
	last float64
}

func newFrameLog(dir string, format render.PixelFormat) (*frameLog, error) {
	path := filepath.Join(dir, cpuid.CPU.BrandName, format.String())
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(filepath.Join(path, "fps.txt"), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, err
	}
	return &frameLog{file: file}, nil
}

// Log records framerate, skipping startup zeros and unchanged readings.
func (l *frameLog) Log(framerate float64) {
	if math.Floor(framerate) > 0 && l.last != framerate {
		l.last = framerate
		fmt.Fprintln(l.file, framerate)
	}
}

func (l *frameLog) Close() error {
	return l.file.Close()
}
