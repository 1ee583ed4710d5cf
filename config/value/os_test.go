package value

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMustDirValue(t *testing.T) {
	var x string

	dir := t.TempDir()

	val := NewMustDir(&x, dir)

	require.Equal(t, dir, val.String())
	require.Equal(t, nil, val.Validate())

	val.Set(filepath.Join(dir, "missing"))
	require.Error(t, val.Validate())

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte{}, 0644))

	val.Set(file)
	require.Error(t, val.Validate())

	val.Set("")
	require.Error(t, val.Validate())
	require.Equal(t, true, val.IsEmpty())
}

func TestFilenameValue(t *testing.T) {
	var x string

	val := NewFilename(&x, "app_usage_log.json")

	require.Equal(t, "app_usage_log.json", val.String())
	require.Equal(t, nil, val.Validate())

	val.Set("logs/app_usage_log.json")
	require.Error(t, val.Validate())

	val.Set("..")
	require.Error(t, val.Validate())

	val.Set("")
	require.Error(t, val.Validate())
}

func TestAddressValue(t *testing.T) {
	var x string

	val := NewMustAddress(&x, "127.0.0.1:8090")

	require.Equal(t, "127.0.0.1:8090", val.String())
	require.Equal(t, nil, val.Validate())
	require.Equal(t, false, val.IsEmpty())

	val.Set("9090")

	require.Equal(t, ":9090", x)
	require.Equal(t, nil, val.Validate())

	val.Set("localhost")
	require.Error(t, val.Validate())
	require.Equal(t, true, val.IsEmpty())
}

func TestTimeValue(t *testing.T) {
	var x time.Time

	tm := time.Unix(1257894000, 0).UTC()

	val := NewTime(&x, tm)

	require.Equal(t, "2009-11-10T23:00:00Z", val.String())
	require.Equal(t, nil, val.Validate())
	require.Equal(t, false, val.IsEmpty())

	val.Set("2009-11-11T23:00:00Z")

	require.Equal(t, time.Date(2009, time.November, 11, 23, 0, 0, 0, time.UTC), x)
}

func TestLogLevelValue(t *testing.T) {
	var x string

	val := NewLogLevel(&x, "info")

	require.Equal(t, nil, val.Validate())

	val.Set("DEBUG")
	require.Equal(t, nil, val.Validate())

	val.Set("verbose")
	require.Error(t, val.Validate())
}

func TestLogFormatValue(t *testing.T) {
	var x string

	val := NewLogFormat(&x, "console")

	require.Equal(t, nil, val.Validate())
	require.Equal(t, "console", val.String())

	val.Set("json")
	require.Equal(t, nil, val.Validate())

	val.Set("xml")
	require.Error(t, val.Validate())
}
