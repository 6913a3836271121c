// Copyright 2026 The go-dicomdir Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicomdir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		uid := NewUID()
		assert.True(t, strings.HasPrefix(uid, "2.25."), "uid %q", uid)
		assert.LessOrEqual(t, len(uid), 64, "uid %q exceeds the UI value length limit", uid)
		assert.False(t, seen[uid], "uid %q generated twice", uid)
		seen[uid] = true
	}
}
