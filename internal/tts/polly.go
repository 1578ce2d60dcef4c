package tts

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
)

// Synthesizer converts text to audio bytes. The Polly implementation is the
// production one; tests substitute a fake.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID, format string) ([]byte, error)
}

type PollySynthesizer struct {
	client *polly.Client
}

func NewPollySynthesizer(ctx context.Context, region string) (*PollySynthesizer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &PollySynthesizer{client: polly.NewFromConfig(cfg)}, nil
}

func (s *PollySynthesizer) Synthesize(ctx context.Context, text, voiceID, format string) ([]byte, error) {
	out, err := s.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         aws.String(text),
		VoiceId:      types.VoiceId(voiceID),
		OutputFormat: types.OutputFormat(format),
		Engine:       types.EngineNeural,
	})
	if err != nil {
		return nil, fmt.Errorf("polly synthesize: %w", err)
	}
	if out.AudioStream == nil {
		return nil, errors.New("no audio stream returned from Polly")
	}
	defer out.AudioStream.Close()

	return io.ReadAll(out.AudioStream)
}
