// Package pipeline implements the core speech translation engine.
//
// The pipeline receives a validated request from the transport, then runs
// it through three strictly sequential stages: speech-to-text, text
// translation, text-to-speech. Each stage's output is the next stage's
// required input, so there is no parallelism and no retry; the first
// failure halts the run and is tagged with the stage it occurred at.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/voicebridge/voicebridge/internal/audio"
	"github.com/voicebridge/voicebridge/internal/message"
	"github.com/voicebridge/voicebridge/internal/stt"
	"github.com/voicebridge/voicebridge/internal/translate"
	"github.com/voicebridge/voicebridge/internal/tts"
)

// Stage identifies where in the pipeline a request currently is. Stages are
// ordered by execution sequence and used for error attribution only.
type Stage string

const (
	StageParseRequest  Stage = "parse_request"
	StageDecodeAudio   Stage = "decode_audio"
	StageSpeechToText  Stage = "speech_to_text"
	StageTranslateText Stage = "translate_text"
	StageTextToSpeech  Stage = "text_to_speech"
)

// StageError pairs a failure with the stage it occurred at. Once a request
// has entered the pipeline, no error escapes without a stage label.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline sequences the three translation stages. It holds no state beyond
// the injected stage backends, so one instance serves concurrent requests.
type Pipeline struct {
	recognizer  stt.Recognizer
	translator  translate.Translator
	synthesizer tts.Synthesizer
}

// New creates a Pipeline with the given stage backends.
func New(recognizer stt.Recognizer, translator translate.Translator, synthesizer tts.Synthesizer) *Pipeline {
	return &Pipeline{
		recognizer:  recognizer,
		translator:  translator,
		synthesizer: synthesizer,
	}
}

// Run processes one request end to end and returns the synthesized audio.
// Any failure is returned as a *StageError naming the stage it occurred at.
func (p *Pipeline) Run(ctx context.Context, req *message.TranslationRequest) ([]byte, error) {
	start := time.Now()
	logger := slog.With("source", req.SourceLocale, "target", req.TargetLocale, "voice", req.NeuralVoice)
	logger.Info("pipeline started")

	audioBytes, err := req.DecodeAudio()
	if err != nil {
		return nil, fail(logger, StageDecodeAudio, err)
	}
	logger.Info("stage complete", "stage", StageDecodeAudio, "audio_bytes", len(audioBytes))

	pcm := audio.StripWAVHeader(audioBytes)
	if len(pcm) != len(audioBytes) {
		logger.Debug("wav header detected, stripped", "pcm_bytes", len(pcm))
	}

	transcript, err := p.recognizer.Recognize(ctx, pcm, req.SourceLocale)
	if err != nil {
		return nil, fail(logger, StageSpeechToText, err)
	}
	logger.Info("stage complete", "stage", StageSpeechToText, "text_length", len(transcript))

	translated, err := p.translator.Translate(ctx, transcript, req.SourceLocale, req.TargetLocale)
	if err != nil {
		return nil, fail(logger, StageTranslateText, err)
	}
	logger.Info("stage complete", "stage", StageTranslateText, "text_length", len(translated))

	result, err := p.synthesizer.Synthesize(ctx, translated, tts.SynthesizeOpts{
		Locale: req.TargetLocale,
		Voice:  req.NeuralVoice,
	})
	if err != nil {
		return nil, fail(logger, StageTextToSpeech, err)
	}
	logger.Info("stage complete", "stage", StageTextToSpeech, "audio_bytes", len(result.Audio))

	logger.Info("pipeline complete", "duration", time.Since(start))
	return result.Audio, nil
}

// fail logs a stage failure with full detail and wraps it for the caller.
func fail(logger *slog.Logger, stage Stage, err error) *StageError {
	logger.Error("pipeline failed", "stage", stage, "error", err)
	return &StageError{Stage: stage, Err: err}
}
