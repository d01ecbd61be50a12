// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package output writes the rendered transcript to its destination,
// either stdout or a file chosen with --output. The document is always
// rendered in full before any write happens, so a failed fetch never
// leaves a truncated transcript behind.
//
// Example usage:
//
//	w, err := output.NewFileWriter("review.md")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	if err := w.WriteDocument(doc); err != nil {
//	    log.Fatal(err)
//	}
package output
