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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/walteh/reword/pkg/operation"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 35 // Base width for the source path
)

// 🎯 FormatResultLine formats a result for terminal display
func FormatResultLine(res operation.Result) string {
	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		color.GreenString("✓"),
		fmt.Sprintf("%-*s", nameWidth, res.SourcePath),
		color.CyanString("→ %s", res.OutputName),
		color.New(color.Faint).Sprint(Meta(res)),
	)
}

// 🎯 FormatFailureLine formats a failed file for terminal display
func FormatFailureLine(fail operation.Failure) string {
	msg := ""
	if fail.Err != nil {
		msg = fail.Err.Error()
	}
	return fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", fileIndent),
		color.RedString("✗"),
		fmt.Sprintf("%-*s", nameWidth, fail.SourcePath),
		color.RedString(msg),
	)
}
