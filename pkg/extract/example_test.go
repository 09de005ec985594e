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

package extract_test

import (
	"fmt"

	"github.com/walteh/minires/pkg/extract"
)

func ExampleReference() {
	ref, ok := extract.Reference(`<Script Src="js/app.js"></Script>`, "<SCRIPT", `SRC="`)
	fmt.Println(ref, ok)

	_, ok = extract.Reference(`<script>inline()</script>`, "<SCRIPT", `SRC="`)
	fmt.Println(ok)

	// Output:
	// js/app.js true
	// false
}
