package profiling

import (
	"testing"

	"github.com/alumnihub/alumnihub-api/config"
	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSampleTypes_Default(t *testing.T) {
	got, err := parseSampleTypes("  ")
	require.NoError(t, err)
	assert.Equal(t, defaultSampleTypes, got)
}

func TestParseSampleTypes_DeduplicatesAndKeepsOrder(t *testing.T) {
	got, err := parseSampleTypes("mutex, cpu,,mutex")
	require.NoError(t, err)

	assert.Equal(t, []pyroscope.ProfileType{
		pyroscope.ProfileMutexCount,
		pyroscope.ProfileMutexDuration,
		pyroscope.ProfileCPU,
	}, got)
}

func TestParseSampleTypes_Invalid(t *testing.T) {
	_, err := parseSampleTypes("cpu,heapdump")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "heapdump")
}

func TestProfileTags_SkipsEmptyValues(t *testing.T) {
	tags := profileTags(config.ObservabilityConfig{
		ServiceName:    "alumnihub-api",
		ServiceVersion: "1.2.0",
	}, "staging")

	assert.Equal(t, map[string]string{
		"service_name":    "alumnihub-api",
		"service_version": "1.2.0",
		"environment":     "staging",
	}, tags)
}

func TestStart_Disabled(t *testing.T) {
	stop, err := Start(config.ProfilingConfig{Enabled: false}, config.ObservabilityConfig{}, "test")
	require.NoError(t, err)
	stop()
}

func TestStart_EnabledWithoutEndpoint(t *testing.T) {
	_, err := Start(config.ProfilingConfig{Enabled: true}, config.ObservabilityConfig{}, "test")
	assert.Error(t, err)
}
