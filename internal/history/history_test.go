package history

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/jpl-au/socialposts/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openLog opens the audit log under a temp HOME.
func openLog(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, log.Open())
	t.Cleanup(log.Close)
}

func TestRun(t *testing.T) {
	openLog(t)

	old := time.Now().Add(-48 * time.Hour).Unix()
	log.Log(log.Entry{Source: "social:share", Action: "post", Start: old, End: old, Success: true})
	log.Event("social:post-to-linkedin", "post").Server("linkedin").Write(errors.New("post failed (tool): quota"))
	log.Event("core:config", "set").Write(nil)

	var buf bytes.Buffer
	res, err := Run(&buf, Options{Source: DefaultSource})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "social:post-to-linkedin", res.Records[0].Source)
	assert.Contains(t, buf.String(), "post failed (tool): quota")
	assert.NotContains(t, buf.String(), "core:config")

	buf.Reset()
	res, err = Run(&buf, Options{Source: DefaultSource, Since: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "social:post-to-linkedin", res.Records[0].Source)
}

func TestRun_NotOpen(t *testing.T) {
	log.Close()
	_, err := Run(&bytes.Buffer{}, Options{})
	assert.ErrorIs(t, err, log.ErrNotOpen)
}
