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

// Package extract locates quoted resource references inside single-line
// HTML tags such as <link href="..."> and <script src="...">.
package extract

// 🏷️ Marker names the tag and the attribute (including its opening quote)
// that carry a resource reference.
type Marker struct {
	Tag       string
	Attribute string
}

var (
	// Stylesheet matches <link ... href="...">.
	Stylesheet = Marker{Tag: "<LINK", Attribute: `HREF="`}

	// Script matches <script ... src="...">.
	Script = Marker{Tag: "<SCRIPT", Attribute: `SRC="`}
)

// 🔍 Find returns the reference in line described by m.
func (m Marker) Find(line string) (string, bool) {
	return Reference(line, m.Tag, m.Attribute)
}

// 🔍 Reference finds tagMarker in line, then attrMarker at or after it, and
// returns the text up to the next double quote. All matching ignores ASCII
// case; offsets always refer to line itself.
func Reference(line, tagMarker, attrMarker string) (string, bool) {
	tag := IndexFold(line, tagMarker, 0)
	if tag == -1 {
		return "", false
	}

	attr := IndexFold(line, attrMarker, tag)
	if attr == -1 {
		return "", false
	}

	start := attr + len(attrMarker)
	end := IndexFold(line, `"`, start)
	if end == -1 {
		return "", false
	}

	return line[start:end], true
}

// IndexFold returns the index of the first ASCII case-insensitive match of
// substr in s at or after from, or -1. Only ASCII letters fold, so a match
// always has the byte length of substr.
func IndexFold(s, substr string, from int) int {
	if from < 0 {
		from = 0
	}
	n := len(substr)
	for i := from; i+n <= len(s); i++ {
		if equalFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func equalFold(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}
	return true
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
