// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/minires/pkg/errs"
)

// 🎛️ Mode selects what is done with the resources of the managed region
type Mode string

const (
	// ModeMinify bundles and minifies the referenced stylesheets and scripts.
	ModeMinify Mode = "minify"
	// ModeRename copies each referenced resource to a version-tagged name.
	ModeRename Mode = "rename"
)

// 📚 Options is the complete configuration of one run
type Options struct {
	ProcessStartTag  string `json:"process_start_tag" yaml:"process_start_tag" hcl:"process_start_tag,optional"`
	ProcessEndTag    string `json:"process_end_tag" yaml:"process_end_tag" hcl:"process_end_tag,optional"`
	InputDir         string `json:"input_dir" yaml:"input_dir" hcl:"input_dir,optional"`
	OutputDir        string `json:"output_dir" yaml:"output_dir" hcl:"output_dir,optional"`
	InputHeaderFile  string `json:"input_header_file" yaml:"input_header_file" hcl:"input_header_file,optional"`
	OutputHeaderFile string `json:"output_header_file" yaml:"output_header_file" hcl:"output_header_file,optional"`

	// minify mode
	MinifiedCSSFile string `json:"minified_css_file,omitempty" yaml:"minified_css_file,omitempty" hcl:"minified_css_file,optional"`
	MinifiedJSFile  string `json:"minified_js_file,omitempty" yaml:"minified_js_file,omitempty" hcl:"minified_js_file,optional"`
	Verbose         bool   `json:"verbose,omitempty" yaml:"verbose,omitempty" hcl:"verbose,optional"`

	// rename mode
	VersionTag string   `json:"version_tag,omitempty" yaml:"version_tag,omitempty" hcl:"version_tag,optional"`
	Exclude    []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
}

type requirement struct {
	value string
	name  string
}

// 🔍 Validate checks that every option mode needs is set. The first missing
// option is reported as an errs.ErrConfiguration.
func (o *Options) Validate(mode Mode) error {
	required := []requirement{
		{o.ProcessStartTag, "processStartTag"},
		{o.ProcessEndTag, "processEndTag"},
		{o.InputDir, "inputDir"},
		{o.OutputDir, "outputDir"},
		{o.InputHeaderFile, "inputHeaderFile"},
		{o.OutputHeaderFile, "outputHeaderFile"},
	}

	switch mode {
	case ModeMinify:
		required = append(required,
			requirement{o.MinifiedJSFile, "minifiedJsFile"},
			requirement{o.MinifiedCSSFile, "minifiedCssFile"},
		)
	case ModeRename:
		required = append(required, requirement{o.VersionTag, "versionTag"})
	default:
		return errs.Configuration(fmt.Sprintf("unknown mode %q", mode))
	}

	for _, r := range required {
		if r.value == "" {
			return errs.Configuration("Missing " + r.name)
		}
	}

	for i, pattern := range o.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("exclude %d: %w", i, errs.Configuration(fmt.Sprintf("invalid pattern %q", pattern)))
		}
	}

	return nil
}

// 🚫 Excluded reports whether ref matches one of the exclude patterns
func (o *Options) Excluded(ref string) bool {
	for _, pattern := range o.Exclude {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(ref)); err == nil && ok {
			return true
		}
	}
	return false
}

// 📝 String returns a string representation of the options
func (o *Options) String() string {
	return fmt.Sprintf("%s -> %s (%s .. %s)", o.InputHeaderFile, o.OutputHeaderFile, o.ProcessStartTag, o.ProcessEndTag)
}
