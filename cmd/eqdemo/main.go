// Command eqdemo runs a test tone through the console equalizer.
//
// Usage:
//
//	eqdemo [flags]
//
// Examples:
//
//	eqdemo -play
//	eqdemo -gains 0,0,0,3,6,3,0,0,0,0 -play
//	eqdemo -freq 1000 -trim -6 -out tone.f32
//	eqdemo -gains 0,0,0,0,12,0,0,0,0,0 -response
package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-consoleeq/dsp/eq"
	"github.com/cwbudde/algo-consoleeq/dsp/signal"
	"github.com/cwbudde/algo-consoleeq/measure/response"
)

// CLI defines the command-line interface.
type CLI struct {
	SampleRate int     `default:"48000" help:"Sample rate in Hz"`
	Freq       float64 `default:"440" help:"Test tone frequency in Hz"`
	Duration   float64 `default:"3" help:"Tone duration in seconds"`
	Level      float64 `default:"-12" help:"Tone level in dBFS"`
	Trim       float64 `default:"0" help:"Output trim in dB [-12, 12]"`
	Gains      string  `help:"Ten comma-separated band gains in dB, 16 kHz down to 31 Hz"`
	Play       bool    `help:"Play the processed tone"`
	Out        string  `type:"path" help:"Write raw stereo float32 LE samples to this file"`
	Response   bool    `help:"Print the band equalizer magnitude response and exit"`
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("eqdemo"),
		kong.Description("Ten-band console equalizer demo"),
		kong.UsageOnError(),
	)

	err := run(cli)
	kctx.FatalIfErrorf(err)
}

func run(cli *CLI) error {
	if cli.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive: %d", cli.SampleRate)
	}

	gains, err := parseGains(cli.Gains)
	if err != nil {
		return err
	}

	p, err := eq.NewProcessor(float64(cli.SampleRate))
	if err != nil {
		return err
	}
	if err := p.SetTrim(cli.Trim); err != nil {
		return err
	}
	for i, g := range gains {
		if err := p.SetBandGain(i, g); err != nil {
			return err
		}
	}

	if cli.Response {
		return printResponse(p, float64(cli.SampleRate))
	}

	left, right, err := renderTone(p, cli)
	if err != nil {
		return err
	}

	if cli.Out != "" {
		if err := writeRaw(cli.Out, left, right); err != nil {
			return err
		}
		fmt.Printf("wrote %d stereo frames to %s\n", len(left), cli.Out)
	}

	if cli.Play {
		return play(cli.SampleRate, left, right)
	}

	if cli.Out == "" {
		fmt.Println("nothing to do: pass -play, -out or -response")
	}

	return nil
}

func parseGains(s string) ([eq.NumBands]float64, error) {
	var gains [eq.NumBands]float64
	if strings.TrimSpace(s) == "" {
		return gains, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != eq.NumBands {
		return gains, fmt.Errorf("expected %d band gains, got %d", eq.NumBands, len(parts))
	}

	for i, part := range parts {
		g, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return gains, fmt.Errorf("band %d gain %q: %w", i, part, err)
		}
		gains[i] = g
	}

	return gains, nil
}

func renderTone(p *eq.Processor, cli *CLI) (left, right []float64, err error) {
	n := int(cli.Duration * float64(cli.SampleRate))
	amp := math.Pow(10, cli.Level/20)

	left, err = signal.Sine(cli.Freq, amp, float64(cli.SampleRate), n)
	if err != nil {
		return nil, nil, err
	}

	right = make([]float64, n)
	copy(right, left)

	p.ProcessBlock(left, right)

	return left, right, nil
}

// bandChannel adapts one channel of the band equalizer for measurement.
type bandChannel struct {
	bands *eq.BandEqualizer
}

func (b bandChannel) ProcessSample(x float64) float64 {
	return b.bands.ProcessChannel(x, 0)
}

func printResponse(p *eq.Processor, sampleRate float64) error {
	// One silent frame latches the gains into coefficients.
	p.ProcessFrame(0, 0)
	p.Reset()

	// The bands run at twice the host rate inside the chain.
	r, err := response.Measure(bandChannel{p.Bands()}, response.Config{
		SampleRate: 2 * sampleRate,
		FFTSize:    32768,
	})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Band\tFreq [Hz]\tGain [dB]\tMeasured [dB]\n")
	for i := 0; i < eq.NumBands; i++ {
		freq := eq.BandFrequency(i)
		fmt.Fprintf(tw, "%d\t%.0f\t%+.1f\t%+.2f\n", i, freq, p.BandGain(i), r.AtDB(freq))
	}

	return tw.Flush()
}

func writeRaw(path string, left, right []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := f.Write(interleave(left, right)); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func interleave(left, right []float64) []byte {
	var buf bytes.Buffer
	buf.Grow(8 * len(left))

	var b [4]byte
	for i := range left {
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(left[i])))
		buf.Write(b[:])
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(right[i])))
		buf.Write(b[:])
	}

	return buf.Bytes()
}

func play(sampleRate int, left, right []float64) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(bytes.NewReader(interleave(left, right)))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	return player.Close()
}
