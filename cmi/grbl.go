package cmi

import (
	"bufio"
	"fmt"
	"io"

	"github.com/joushou/goserial"
	"github.com/kennylevinsen/rs274ngc/nglog"
)

// GrblDriver streams Printer output to a GRBL controller over a serial
// port, replying to ok/error/ALARM lines exactly as the teacher's
// streaming.GrblStreamer.Send does, and rejecting the operations GRBL
// cannot perform the same way streaming.GrblStreamer.Check /
// export.GrblGenerator do.
type GrblDriver struct {
	Printer

	port io.ReadWriteCloser
	link *grblLink
}

// OpenGrbl opens the named serial port at GRBL's standard baud rate and
// waits for its startup banner.
func OpenGrbl(name string) (*GrblDriver, error) {
	port, err := serial.OpenPort(&serial.Config{Name: name, Baud: 115200})
	if err != nil {
		return nil, err
	}
	link := &grblLink{reader: bufio.NewReader(port), writer: bufio.NewWriter(port)}

	for {
		line, err := link.reader.ReadString('\n')
		if err != nil {
			port.Close()
			return nil, fmt.Errorf("unable to detect initialized grbl: %w", err)
		}
		if len(line) >= 5 && line[:5] == "Grbl " {
			nglog.Infof("grbl: %s", line)
			break
		}
	}

	d := &GrblDriver{port: port, link: link}
	d.Printer = Printer{W: link, Precision: 4}
	return d, nil
}

func (d *GrblDriver) Close() error {
	d.port.Write([]byte("\x18\n"))
	return d.port.Close()
}

// CutterRadiusCompStart rejects cutter-radius compensation: GRBL has no
// support for it.
func (d *GrblDriver) CutterRadiusCompStart(side Side) {
	nglog.Errorf("grbl does not support cutter radius compensation")
}

// CoolantMistOn rejects mist coolant: GRBL has no M7 support.
func (d *GrblDriver) CoolantMistOn() {
	nglog.Errorf("grbl does not support mist coolant")
}

// grblLink is the io.Writer Printer writes lines into: it flushes each
// line immediately and paces sending against GRBL's 128-byte serial
// buffer by draining ok/error/alarm replies, matching
// streaming.GrblStreamer.Send's flow-control loop.
type grblLink struct {
	reader    *bufio.Reader
	writer    *bufio.Writer
	inFlight  int
	bytesSent int
}

func (g *grblLink) Write(p []byte) (int, error) {
	for g.bytesSent > 0 && g.bytesSent+len(p) > 127 {
		if err := g.drainOne(); err != nil {
			return 0, err
		}
	}
	n, err := g.writer.Write(p)
	if err != nil {
		return n, err
	}
	if err := g.writer.Flush(); err != nil {
		return n, err
	}
	g.bytesSent += len(p)
	g.inFlight++
	return n, nil
}

func (g *grblLink) drainOne() error {
	line, err := g.reader.ReadString('\n')
	if err != nil {
		return err
	}
	switch {
	case len(line) >= 5 && line[:5] == "error":
		return fmt.Errorf("grbl: %s", line)
	case len(line) >= 5 && line[:5] == "ALARM":
		return fmt.Errorf("grbl: %s", line)
	case line == "ok\r\n" || line == "ok\n":
		g.inFlight--
		g.bytesSent = 0
	default:
		nglog.Infof("grbl: %s", line)
	}
	return nil
}
