// /internal/music/stream/discord.go
package stream

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/bwmarrin/discordgo"
	"layeh.com/gopus"
)

// StreamToDiscord reads s16le PCM from stream, encodes 20ms opus frames and
// feeds them to the voice connection until EOF or a stop signal. While paused
// reports true no frames are read or sent, which also backpressures the
// upstream FFmpeg process.
func StreamToDiscord(stream io.Reader, stop <-chan struct{}, paused func() bool, vc *discordgo.VoiceConnection) error {
	encoder, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		return fmt.Errorf("encoder error: %w", err)
	}

	vc.Speaking(true)
	defer vc.Speaking(false)

	pcmBuf := make([]byte, frameSize*channels*2)
	intBuf := make([]int16, frameSize*channels)

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		if paused != nil && paused() {
			select {
			case <-stop:
				return nil
			case <-time.After(20 * time.Millisecond):
			}
			continue
		}

		_, err := io.ReadFull(stream, pcmBuf)
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil
			}
			return fmt.Errorf("read error: %w", err)
		}

		for i := range intBuf {
			intBuf[i] = int16(binary.LittleEndian.Uint16(pcmBuf[i*2 : i*2+2]))
		}

		opus, err := encoder.Encode(intBuf, frameSize, len(pcmBuf))
		if err != nil {
			return fmt.Errorf("encode error: %w", err)
		}

		select {
		case <-stop:
			return nil
		case vc.OpusSend <- opus:
		}
	}
}
