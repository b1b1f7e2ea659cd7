/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package httpsource

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options are the flags needed to configure a Source, following the
// AddFlags/BindFlags convention used throughout the rest of this stack.
type Options struct {
	// URL is the upstream resource to conditionally GET.
	URL string

	// Timeout bounds a single GET, including any redirects.
	Timeout time.Duration

	// BearerToken, if set, is sent as an Authorization header.
	BearerToken string
}

func (o *Options) AddFlags(flags *pflag.FlagSet, prefix string) {
	flags.StringVar(&o.URL, prefix+"-url", "", "URL of the upstream resource to poll.")
	flags.DurationVar(&o.Timeout, prefix+"-timeout", 10*time.Second, "Timeout for a single conditional GET.")
	flags.StringVar(&o.BearerToken, prefix+"-bearer-token", "", "Optional bearer token sent with each request.")
}

// OptionsFromViper reads an Options out of v, the way
// pkg/testing/config.SetupViper's callers expect a *viper.Viper to already
// have defaults and environment binding configured.
func OptionsFromViper(v *viper.Viper, prefix string) Options {
	return Options{
		URL:         v.GetString(prefix + "-url"),
		Timeout:     v.GetDuration(prefix + "-timeout"),
		BearerToken: v.GetString(prefix + "-bearer-token"),
	}
}
