package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ecsdisco/internal/config"
	"github.com/imamik/ecsdisco/internal/platform/s3"
	"github.com/imamik/ecsdisco/internal/stack"
	"github.com/imamik/ecsdisco/internal/topology"
)

type fakePublisher struct {
	bucket      string
	key         string
	contentType string
	data        []byte
	uploaded    bool
	err         error
}

func (f *fakePublisher) Publish(_ context.Context, bucket, key, contentType string, data []byte) (bool, error) {
	f.bucket, f.key, f.contentType, f.data = bucket, key, contentType, data
	return f.uploaded, f.err
}

func usePublisher(t *testing.T, fake *fakePublisher) *s3.Options {
	t.Helper()
	var got s3.Options
	newPublisher = func(_ context.Context, opts s3.Options) (publisher, error) {
		got = opts
		return fake, nil
	}
	return &got
}

func TestPublish_Synthesized(t *testing.T) {
	cfg := config.Default()
	cfg.Environment.Region = "eu-central-1"
	useConfig(t, cfg)

	var synthOpts stack.SynthOptions
	synthesize = fakeSynth(t, &synthOpts)
	fake := &fakePublisher{uploaded: true}
	gotOpts := usePublisher(t, fake)

	var err error
	output := captureOutput(func() {
		err = Publish(context.Background(), PublishOptions{
			Bucket:    "templates",
			Prefix:    "/stacks/",
			Endpoint:  "http://localhost:9000",
			PathStyle: true,
		})
	})
	require.NoError(t, err)

	assert.NotEmpty(t, synthOpts.Outdir)
	assert.NoDirExists(t, synthOpts.Outdir)
	assert.Equal(t, "templates", fake.bucket)
	assert.Equal(t, "stacks/EcsServicediscoveryStack.template.json", fake.key)
	assert.Equal(t, "application/json", fake.contentType)
	assert.JSONEq(t, fakeTemplate, string(fake.data))
	assert.Equal(t, s3.Options{Region: "eu-central-1", Endpoint: "http://localhost:9000", PathStyle: true}, *gotOpts)
	assert.Contains(t, output, "Published s3://templates/stacks/EcsServicediscoveryStack.template.json")
}

func TestPublish_TemplateFile(t *testing.T) {
	useConfig(t, config.Default())
	synthesize = func(*topology.Plan, stack.SynthOptions) (*stack.Result, error) {
		t.Fatal("synthesize must not run when a template file is given")
		return nil, nil
	}
	fake := &fakePublisher{uploaded: false}
	usePublisher(t, fake)

	path := filepath.Join(t.TempDir(), "stack.template.json")
	require.NoError(t, os.WriteFile(path, []byte(fakeTemplate), 0o600))

	var err error
	output := captureOutput(func() {
		err = Publish(context.Background(), PublishOptions{Bucket: "templates", TemplateFile: path})
	})
	require.NoError(t, err)

	assert.Equal(t, "EcsServicediscoveryStack.template.json", fake.key)
	assert.Contains(t, output, "is up to date")
}

func TestPublish_Errors(t *testing.T) {
	t.Run("invalid template file", func(t *testing.T) {
		useConfig(t, config.Default())
		usePublisher(t, &fakePublisher{})

		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"Outputs": {}}`), 0o600))

		err := Publish(context.Background(), PublishOptions{Bucket: "templates", TemplateFile: path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid template")
	})

	t.Run("upload fails", func(t *testing.T) {
		useConfig(t, config.Default())
		var synthOpts stack.SynthOptions
		synthesize = fakeSynth(t, &synthOpts)
		usePublisher(t, &fakePublisher{err: errors.New("access denied")})

		var err error
		captureOutput(func() {
			err = Publish(context.Background(), PublishOptions{Bucket: "templates"})
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "publish failed: access denied")
	})
}
