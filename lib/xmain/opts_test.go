package xmain_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xos"

	"github.com/coachboard/playdiagram/lib/xmain"
)

func newOpts(t *testing.T, environ []string, args ...string) *xmain.Opts {
	t.Helper()
	env := xos.NewEnv(environ)
	return xmain.NewOpts(env, cmdlog.Log(env, &bytes.Buffer{}), args)
}

func TestEnvFallback(t *testing.T) {
	t.Parallel()

	o := newOpts(t, []string{"PD_MODE=full-editable", "PD_WIDE=1", "PD_OUT=play.svg"}, "--wide=false")
	mode := o.String("PD_MODE", "mode", "m", "compact-preview", "")
	wide, err := o.Bool("PD_WIDE", "wide", "", false, "")
	require.NoError(t, err)
	out := o.String("PD_OUT", "out", "", "", "")

	require.NoError(t, o.Flags.Parse(o.Args))
	assert.Equal(t, "full-editable", *mode)
	// the flag wins over the environment
	assert.False(t, *wide)
	assert.Equal(t, "play.svg", *out)

	defaults := o.Defaults()
	assert.Contains(t, defaults, "--mode")
	assert.Contains(t, defaults, "- $PD_MODE\n- $PD_WIDE\n- $PD_OUT")
}

func TestBadEnv(t *testing.T) {
	t.Parallel()

	o := newOpts(t, []string{"PD_WIDE=maybe", "PD_STRICT=false"})
	_, err := o.Bool("PD_WIDE", "wide", "", false, "")
	assert.Error(t, err)
	strict, err := o.Bool("PD_STRICT", "strict", "", true, "")
	require.NoError(t, err)
	assert.False(t, *strict)
}

func TestUsageAndExitErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bad usage: too many arguments", xmain.UsageErrorf("too many %s", "arguments").Error())
	assert.Equal(t, "exiting with code 3: strict", xmain.ExitErrorf(3, "strict").Error())
	assert.Equal(t, "exiting with code 1", xmain.ExitError{Code: 1}.Error())
}
