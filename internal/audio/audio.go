// Package audio normalizes audio payloads for the recognition stage and
// wraps raw PCM back into WAV containers for responses.
//
// Recognition always runs on raw linear PCM. Callers commonly upload WAV
// files, so StripWAVHeader removes the conventional 44-byte container
// header when the RIFF marker is present.
package audio

import (
	"bytes"
	"encoding/binary"
)

// Fixed stream format expected by the recognition service.
const (
	SampleRate     = 16000
	BitsPerSample  = 16
	Channels       = 1
	wavHeaderSize  = 44
	riffMarkerSize = 4
)

var riffMarker = []byte("RIFF")

// StripWAVHeader removes a conventional 44-byte WAV header from b when the
// payload starts with the RIFF marker, returning the remaining PCM data.
// Anything else is returned unchanged; absence of the marker is a normal
// case, not an error.
//
// This is a heuristic container strip, not a WAV parser: it assumes the
// fixed canonical header layout and does not inspect chunk structure.
func StripWAVHeader(b []byte) []byte {
	if len(b) > wavHeaderSize && bytes.Equal(b[:riffMarkerSize], riffMarker) {
		return b[wavHeaderSize:]
	}
	return b
}

// WrapPCM wraps raw PCM data in a canonical 44-byte WAV container.
func WrapPCM(pcm []byte, sampleRate, channels, bytesPerSample int) []byte {
	dataLen := len(pcm)
	fileLen := 36 + dataLen // header minus the 8-byte RIFF preamble

	buf := &bytes.Buffer{}
	buf.Grow(wavHeaderSize + dataLen)

	// RIFF header
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(fileLen))
	buf.WriteString("WAVE")

	// fmt subchunk
	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16)) // subchunk1 size
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))  // audio format (PCM)
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	byteRate := sampleRate * channels * bytesPerSample
	_ = binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	blockAlign := channels * bytesPerSample
	_ = binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(bytesPerSample*8))

	// data subchunk
	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(pcm)

	return buf.Bytes()
}
