package stego

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// newProgressBar builds a throttled stderr progress bar in the reference
// tool's style (used by its Conceal/Reveal/Verify bit loops), shared here by
// every carrier's bit-write and bit-read loop.
func newProgressBar(total int64, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// progressBitSource wraps a bitSource, advancing bar by one for every bit
// successfully read. Used to show body-read progress once a frame's
// declared length is known.
type progressBitSource struct {
	src bitSource
	bar *progressbar.ProgressBar
}

func (p *progressBitSource) nextBit() (int, bool) {
	bit, ok := p.src.nextBit()
	if ok {
		p.bar.Add(1)
	}
	return bit, ok
}
