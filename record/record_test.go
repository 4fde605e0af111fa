package record_test

import (
	"encoding/json"
	"errors"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/staticbugs/toolwarn/record"
)

var _ = Describe("ErrorproneMsg", func() {
	Context("when decoding", func() {
		It("should convert a string line to an integer", func() {
			var m record.ErrorproneMsg
			err := json.Unmarshal([]byte(`{" Proj":"p","Class":"C"," Type":"warning","  Cat":"X","  Msg":"m"," Code":"c"," Mark":"^"," Line":"12"}`), &m)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(m.Line).Should(Equal(12))
			Expect(m.Proj).Should(Equal("p"))
			Expect(m.Cls).Should(Equal("C"))
			Expect(m.Mark).Should(Equal("^"))
		})

		It("should accept an integer line", func() {
			var m record.ErrorproneMsg
			err := json.Unmarshal([]byte(`{" Proj":"p","Class":"C"," Type":"warning","  Cat":"X","  Msg":"m"," Code":"c"," Mark":"^"," Line":7}`), &m)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(m.Line).Should(Equal(7))
		})

		It("should fail with a coercion error on a non numeric line", func() {
			var m record.ErrorproneMsg
			err := json.Unmarshal([]byte(`{" Proj":"p","Class":"C"," Type":"warning","  Cat":"X","  Msg":"m"," Code":"c"," Mark":"^"," Line":"twelve"}`), &m)
			Expect(err).Should(HaveOccurred())
			var coercion *record.CoercionError
			Expect(errors.As(err, &coercion)).Should(BeTrue())
			Expect(coercion.Field).Should(Equal(" Line"))
		})

		It("should fail with a coercion error on a line out of integer range", func() {
			for _, line := range []string{"1e30", "-1e30", "9223372036854775808"} {
				var m record.ErrorproneMsg
				err := json.Unmarshal([]byte(`{" Proj":"p","Class":"C"," Type":"warning","  Cat":"X","  Msg":"m"," Code":"c"," Mark":"^"," Line":`+line+`}`), &m)
				var coercion *record.CoercionError
				Expect(errors.As(err, &coercion)).Should(BeTrue(), line)
				Expect(errors.Is(err, strconv.ErrRange)).Should(BeTrue(), line)
			}
		})

		It("should truncate a fractional line within range", func() {
			var m record.ErrorproneMsg
			err := json.Unmarshal([]byte(`{" Proj":"p","Class":"C"," Type":"warning","  Cat":"X","  Msg":"m"," Code":"c"," Mark":"^"," Line":12.9}`), &m)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(m.Line).Should(Equal(12))
		})

		It("should fail with a key error on a missing key", func() {
			var m record.ErrorproneMsg
			err := json.Unmarshal([]byte(`{" Proj":"p","Class":"C"," Type":"warning","  Cat":"X","  Msg":"m"," Code":"c"," Mark":"^"}`), &m)
			var keyErr *record.KeyError
			Expect(errors.As(err, &keyErr)).Should(BeTrue())
			Expect(keyErr.Missing).Should(BeTrue())
			Expect(keyErr.Key).Should(Equal(" Line"))
		})

		It("should fail with a key error on an extra key", func() {
			var m record.ErrorproneMsg
			err := json.Unmarshal([]byte(`{" Proj":"p","Class":"C"," Type":"warning","  Cat":"X","  Msg":"m"," Code":"c"," Mark":"^"," Line":1,"extra":true}`), &m)
			var keyErr *record.KeyError
			Expect(errors.As(err, &keyErr)).Should(BeTrue())
			Expect(keyErr.Missing).Should(BeFalse())
			Expect(keyErr.Key).Should(Equal("extra"))
		})
	})

	Context("when constructing", func() {
		It("should reject a line which is not an integer", func() {
			_, err := record.NewErrorproneMsg("p", "C", "warning", "X", "m", "c", "^", "1.5")
			var coercion *record.CoercionError
			Expect(errors.As(err, &coercion)).Should(BeTrue())
		})

		It("should trim blanks around the line", func() {
			m, err := record.NewErrorproneMsg("p", "C", "warning", "X", "m", "c", "^", " 42 ")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(m.Line).Should(Equal(42))
		})
	})

	Context("when encoding", func() {
		It("should emit members in canonical key order", func() {
			m, err := record.NewErrorproneMsg("p", "C", "warning", "X", "m", "c", "^", "12")
			Expect(err).ShouldNot(HaveOccurred())
			raw, err := json.Marshal(m)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(string(raw)).Should(Equal(`{" Proj":"p","Class":"C"," Type":"warning","  Cat":"X","  Msg":"m"," Code":"c"," Mark":"^"," Line":12}`))
		})

		It("should round trip into the zipped keys and values", func() {
			m, err := record.NewErrorproneMsg("p", "C", "warning", "X", "m", "c", "^", "12")
			Expect(err).ShouldNot(HaveOccurred())
			raw, err := json.Marshal(m)
			Expect(err).ShouldNot(HaveOccurred())

			var decoded map[string]interface{}
			Expect(json.Unmarshal(raw, &decoded)).Should(Succeed())
			expected := map[string]interface{}{}
			for _, f := range record.Fields(m) {
				expected[f.Key] = f.Value
			}
			expected[" Line"] = float64(12)
			Expect(decoded).Should(Equal(expected))

			var back record.ErrorproneMsg
			Expect(json.Unmarshal(raw, &back)).Should(Succeed())
			Expect(&back).Should(Equal(m))
		})

		It("should render one line per key", func() {
			m, err := record.NewErrorproneMsg("p", "C", "warning", "X", "m", "c", "^", "12")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(m.String()).Should(ContainSubstring(" Line: 12"))
			Expect(m.String()).Should(HavePrefix("\n Proj: p\n"))
		})
	})
})

var _ = Describe("SpotbugsMsg", func() {
	entry := `{"    Proj":"p","   Class":"a.B","     Cat":"CORRECTNESS","  Abbrev":"NP",
		"    Type":"NP_NULL_ON_SOME_PATH","Priority":"1","    Rank":"5","     Msg":"Possible null",
		"  Method":"run","   Field":"","   Lines":[["10","12","primary"],[5,5,"field"]]}`

	It("should coerce source line bounds to integers", func() {
		var m record.SpotbugsMsg
		Expect(json.Unmarshal([]byte(entry), &m)).Should(Succeed())
		Expect(m.Lines).Should(Equal([]record.SpotbugsSrcline{
			{Start: 10, End: 12, Role: "primary"},
			{Start: 5, End: 5, Role: "field"},
		}))
		Expect(m.Abbrev).Should(Equal("NP"))
	})

	It("should read numeric and null text fields as strings", func() {
		numeric := `{"    Proj":"p","   Class":"a.B","     Cat":"CORRECTNESS","  Abbrev":"NP",
			"    Type":"NP","Priority":1,"    Rank":5,"     Msg":"m","  Method":null,"   Field":"","   Lines":[]}`
		var m record.SpotbugsMsg
		Expect(json.Unmarshal([]byte(numeric), &m)).Should(Succeed())
		Expect(m.Prio).Should(Equal("1"))
		Expect(m.Rank).Should(Equal("5"))
		Expect(m.Mth).Should(BeEmpty())

		raw, err := json.Marshal(&m)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(raw)).Should(ContainSubstring(`"Priority":"1","    Rank":"5"`))
	})

	It("should unroll its ranges into sorted unique lines", func() {
		m := &record.SpotbugsMsg{Lines: []record.SpotbugsSrcline{
			{Start: 10, End: 12}, {Start: 5, End: 5}, {Start: 11, End: 13},
		}}
		Expect(m.UnrollLines()).Should(Equal([]int{5, 10, 11, 12, 13}))
	})

	It("should encode source lines as triples", func() {
		raw, err := json.Marshal(record.SpotbugsSrcline{Start: 1, End: 2, Role: "r"})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(raw)).Should(Equal(`[1,2,"r"]`))
	})

	It("should round trip", func() {
		var m record.SpotbugsMsg
		Expect(json.Unmarshal([]byte(entry), &m)).Should(Succeed())
		raw, err := json.Marshal(&m)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(raw)).Should(HavePrefix(`{"    Proj":"p","   Class":"a.B"`))
		Expect(string(raw)).Should(HaveSuffix(`"   Lines":[[10,12,"primary"],[5,5,"field"]]}`))

		var back record.SpotbugsMsg
		Expect(json.Unmarshal(raw, &back)).Should(Succeed())
		Expect(back).Should(Equal(m))
	})

	It("should reject a malformed source line", func() {
		var l record.SpotbugsSrcline
		Expect(json.Unmarshal([]byte(`[1,2]`), &l)).ShouldNot(Succeed())
		err := json.Unmarshal([]byte(`["x",2,"r"]`), &l)
		var coercion *record.CoercionError
		Expect(errors.As(err, &coercion)).Should(BeTrue())
	})
})

var _ = Describe("Infer records", func() {
	issue := `{
		"bug_class": "PROVER",
		"kind": "ERROR",
		"bug_type": "NULL_DEREFERENCE",
		"qualifier": "object returned by get() could be null",
		"severity": "HIGH",
		"visibility": "user",
		"line": 42,
		"column": -1,
		"procedure": "void A.run()",
		"procedure_start_line": 40,
		"file": "src/main/java/com/acme/A.java",
		"bug_trace": [
			{"level": 0, "filename": "src/main/java/com/acme/A.java", "line_number": 40, "column_number": -1, "description": "start of procedure run()", "node_tags": []}
		],
		"key": "A.java|run|NULL_DEREFERENCE",
		"node_key": "abc",
		"hash": "1f2e",
		"bug_type_hum": "Null Dereference"
	}`

	It("should ignore members Infer adds to an issue", func() {
		var i record.InferIssue
		Expect(json.Unmarshal([]byte(issue), &i)).Should(Succeed())
		Expect(i.Line).Should(Equal(42))
		Expect(i.Column).Should(Equal(-1))
		Expect(i.ProcedureStartLine).Should(Equal(40))
		Expect(i.BugTrace).Should(HaveLen(1))
		Expect(i.BugTrace[0].Desc).Should(Equal("start of procedure run()"))
		Expect(i.BugTrace[0].Line).Should(Equal(40))
	})

	It("should still require every issue key", func() {
		var i record.InferIssue
		err := json.Unmarshal([]byte(`{"bug_type":"NULL_DEREFERENCE"}`), &i)
		var keyErr *record.KeyError
		Expect(errors.As(err, &keyErr)).Should(BeTrue())
		Expect(keyErr.Key).Should(Equal("bug_trace"))
	})

	It("should encode nested trace steps in order", func() {
		var i record.InferIssue
		Expect(json.Unmarshal([]byte(issue), &i)).Should(Succeed())
		raw, err := json.Marshal(&i)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(raw)).Should(HavePrefix(`{"bug_trace":[{"level":0,"filename":"src/main/java/com/acme/A.java","line_number":40,"column_number":-1,"description":"start of procedure run()"}],"bug_type":"NULL_DEREFERENCE","bug_type_hum":"Null Dereference","column":-1`))

		var back record.InferIssue
		Expect(json.Unmarshal(raw, &back)).Should(Succeed())
		Expect(back).Should(Equal(i))
	})

	It("should keep infer message lines as given", func() {
		m := record.NewInferMsg("p", "com.acme.A", "NULL_DEREFERENCE", "could be null", "HIGH", []int{42}, "void A.run()")
		raw, err := json.Marshal(m)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(raw)).Should(Equal(`{"      Proj":"p","     Class":"com.acme.A","  Bug_Type":"NULL_DEREFERENCE","       Msg":"could be null","  Severity":"HIGH","     Lines":[42]," Procedure":"void A.run()"}`))

		var back record.InferMsg
		Expect(json.Unmarshal(raw, &back)).Should(Succeed())
		Expect(back.Lines).Should(Equal([]interface{}{float64(42)}))
		Expect(back.Procedure).Should(Equal("void A.run()"))
	})
})

var _ = Describe("FileDiff", func() {
	It("should deduplicate and convert lines", func() {
		d, err := record.NewFileDiff("p", "C", []string{"3", "1", "3", "2"})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(d.Lines).Should(Equal(record.NewLineSet(1, 2, 3)))
		Expect(d.Lines.Contains(2)).Should(BeTrue())
		Expect(d.Lines.Contains(4)).Should(BeFalse())
	})

	It("should fail on a non numeric line", func() {
		_, err := record.NewFileDiff("p", "C", []string{"3", "x"})
		var coercion *record.CoercionError
		Expect(errors.As(err, &coercion)).Should(BeTrue())
	})

	It("should encode lines as an array", func() {
		d, err := record.NewFileDiff("p", "C", []string{"3", "1", "2"})
		Expect(err).ShouldNot(HaveOccurred())
		raw, err := json.Marshal(d)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(raw)).Should(Equal(`{"Project: ":"p","  Class: ":"C","  Lines: ":[1,2,3]}`))

		var back record.FileDiff
		Expect(json.Unmarshal([]byte(`{"Project: ":"p","  Class: ":"C","  Lines: ":["3",1,3]}`), &back)).Should(Succeed())
		Expect(back.Lines).Should(Equal(record.NewLineSet(1, 3)))
	})

	It("should render the set", func() {
		d := &record.FileDiff{Proj: "p", Cls: "C", Lines: record.NewLineSet(2, 1)}
		Expect(d.String()).Should(ContainSubstring("  Lines: {1, 2}"))
	})
})

var _ = Describe("ClassNameFromPath", func() {
	DescribeTable("deriving class names",
		func(path, expected string) {
			Expect(record.ClassNameFromPath(path)).Should(Equal(expected))
		},
		Entry("com root", "/src/main/java/com/acme/util/Strings.java", "com.acme.util.Strings"),
		Entry("org root", "proj/src/org/apache/Foo.java", "org.apache.Foo"),
		Entry("no root", "src/main/java/net/Foo.java", ""),
		Entry("com wins over org", "/x/org/y/com/z/A.java", "com.z.A"),
	)
})

var _ = Describe("Kind", func() {
	It("should name every record kind", func() {
		Expect(record.ErrorproneKind.String()).Should(Equal("errorprone"))
		Expect(record.FileDiffKind.String()).Should(Equal("diff"))
		Expect(record.Kind(99).String()).Should(Equal("unknown"))
	})
})

var _ = Describe("LineMatches", func() {
	It("should pair changed lines with the messages reported on them", func() {
		diff, err := record.NewFileDiff("lang", "a.B", []string{"3", "4"})
		Expect(err).ShouldNot(HaveOccurred())
		sb := &record.SpotbugsMsg{Proj: "lang", Cls: "a.B", Lines: []record.SpotbugsSrcline{{Start: 4, End: 6, Role: "SOURCE_LINE_DEFAULT"}}}
		none := record.NewInferMsg("lang", record.NoWarning, record.NoWarning, "", "", []int{}, "")

		matches := record.LineMatches{}
		for _, l := range sb.UnrollLines() {
			if diff.Lines.Contains(l) {
				matches.Lines = append(matches.Lines, l)
			}
		}
		matches.Messages = append(matches.Messages, sb, none)

		Expect(matches.Lines).Should(Equal([]int{4}))
		Expect(matches.Messages[1].Class()).Should(Equal("NO_WARNING"))
	})
})

var _ = Describe("Collect", func() {
	It("should keep the order and identity of typed records", func() {
		a := &record.SpotbugsMsg{Proj: "P", Cls: "A"}
		b := &record.SpotbugsMsg{Proj: "P", Cls: "B"}
		records := record.Collect([]*record.SpotbugsMsg{a, b})
		Expect(records).Should(HaveLen(2))
		Expect(records[0]).Should(BeIdenticalTo(a))
		Expect(records[1].Kind()).Should(Equal(record.SpotbugsKind))
		Expect(record.Collect[*record.FileDiff](nil)).Should(BeEmpty())
	})
})
