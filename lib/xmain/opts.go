package xmain

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xos"
)

// Opts registers flags that fall back to environment variables.
// Flags take precedence over the environment.
type Opts struct {
	Args  []string
	Flags *pflag.FlagSet
	env   *xos.Env
	log   *cmdlog.Logger

	registeredEnvs []string
}

func NewOpts(env *xos.Env, log *cmdlog.Logger, args []string) *Opts {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.Usage = func() {}
	flags.SetOutput(io.Discard)
	return &Opts{
		Args:  args,
		Flags: flags,
		env:   env,
		log:   log,
	}
}

// Defaults renders the flag table for help output, followed by the
// environment variables that were registered.
func (o *Opts) Defaults() string {
	b := &strings.Builder{}
	o.Flags.SetOutput(b)
	o.Flags.PrintDefaults()
	o.Flags.SetOutput(io.Discard)

	if len(o.registeredEnvs) > 0 {
		b.WriteString("\nYou may persistently set the following as environment variables (flags take precedence):\n")
		for i, e := range o.registeredEnvs {
			fmt.Fprintf(b, "- $%s", e)
			if i != len(o.registeredEnvs)-1 {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (o *Opts) getEnv(k string) string {
	if k == "" {
		return ""
	}
	o.registeredEnvs = append(o.registeredEnvs, k)
	return o.env.Getenv(k)
}

func (o *Opts) String(envKey, flag, shortFlag string, defaultVal, usage string) *string {
	if env := o.getEnv(envKey); env != "" {
		defaultVal = env
	}
	return o.Flags.StringP(flag, shortFlag, defaultVal, usage)
}

func (o *Opts) Bool(envKey, flag, shortFlag string, defaultVal bool, usage string) (*bool, error) {
	if env := o.getEnv(envKey); env != "" {
		switch {
		case truthyEnv(env):
			defaultVal = true
		case falseyEnv(env):
			defaultVal = false
		default:
			return nil, fmt.Errorf(`invalid environment variable %s. Expected bool. Found %q.`, envKey, env)
		}
	}
	return o.Flags.BoolP(flag, shortFlag, defaultVal, usage), nil
}

func falseyEnv(s string) bool {
	return s == "0" || s == "false"
}

func truthyEnv(s string) bool {
	return s == "1" || s == "true"
}
