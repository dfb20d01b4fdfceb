package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// progressPrinter redraws a single status line on stderr while a scan is in
// flight. stdout stays reserved for the report document.
type progressPrinter struct {
	target   string
	start    time.Time
	frame    int
	done     chan struct{}
	stopOnce sync.Once
}

func newProgressPrinter(target string) *progressPrinter {
	return &progressPrinter{
		target: target,
		start:  time.Now(),
		done:   make(chan struct{}),
	}
}

func (p *progressPrinter) Start() {
	go p.loop()
}

func (p *progressPrinter) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 80))
}

func (p *progressPrinter) loop() {
	ticker := time.NewTicker(150 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.print()
		case <-p.done:
			return
		}
	}
}

func (p *progressPrinter) print() {
	frame := spinnerFrames[p.frame%len(spinnerFrames)]
	p.frame++

	elapsed := time.Since(p.start).Seconds()
	fmt.Fprintf(os.Stderr, "\r%s Scanning %s (%.1fs)", frame, p.target, elapsed)
}
