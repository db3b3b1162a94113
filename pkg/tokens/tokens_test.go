// Copyright 2025 Redpanda Data, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tokens

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/shaders/toonpack/pkg/toonpack"
)

type wordCounter struct{}

func (wordCounter) Count(s string) int {
	return len(strings.Fields(s))
}

func TestMeasure(t *testing.T) {
	g := NewWithT(t)

	original := []byte(`{"description": "` + strings.Repeat("word ", 20) + `", "another_description": "` + strings.Repeat("word ", 20) + `"}`)
	res, err := toonpack.EncodeJSON(original)
	g.Expect(err).ToNot(HaveOccurred())

	report, err := Measure(wordCounter{}, original, res)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(report.JSONBytes).To(Equal(len(original)))
	g.Expect(report.TextBytes).To(Equal(len(res.Text())))
	g.Expect(report.TextTokens).To(BeNumerically("<", report.JSONTokens))
	g.Expect(report.TableBytes).To(BeNumerically(">", 0))
	g.Expect(report.Savings()).To(BeNumerically(">", 0))
	g.Expect(report.String()).To(ContainSubstring("savings:"))
}

func TestMeasureWithoutTables(t *testing.T) {
	g := NewWithT(t)

	original := []byte(`{"a": 1}`)
	res, err := toonpack.EncodeJSON(original, toonpack.WithShortForms(false), toonpack.WithLongStrings(false))
	g.Expect(err).ToNot(HaveOccurred())

	report, err := Measure(Approx{}, original, res)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(report.TableBytes).To(BeZero())
	g.Expect(report.TableTokens).To(BeZero())
}

func TestMeasureRejectsInvalidJSON(t *testing.T) {
	g := NewWithT(t)

	_, err := Measure(Approx{}, []byte(`{nope`), toonpack.Result{})
	g.Expect(err).To(HaveOccurred())
}

func TestApprox(t *testing.T) {
	g := NewWithT(t)

	g.Expect(Approx{}.Count("")).To(Equal(0))
	g.Expect(Approx{}.Count("abcd")).To(Equal(1))
	g.Expect(Approx{}.Count("abcde")).To(Equal(2))
	g.Expect(Report{}.Savings()).To(BeZero())
}

func TestTiktoken(t *testing.T) {
	g := NewWithT(t)

	counter, err := NewTiktoken("")
	if err != nil {
		t.Skipf("vocabulary unavailable: %v", err)
	}
	g.Expect(counter.Count("")).To(Equal(0))
	g.Expect(counter.Count("hello world")).To(Equal(2))
	g.Expect(counter.Count(strings.Repeat("hello world ", 10))).To(BeNumerically(">", 10))

	_, err = NewTiktoken("no_such_encoding")
	g.Expect(err).To(MatchError(ContainSubstring("no_such_encoding")))
}
