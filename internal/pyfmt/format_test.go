package pyfmt_test

import "github.com/dalibo/cartesian/internal/pyfmt"

func (suite *Suite) TestParseLiteralOnly() {
	r := suite.Require()
	f, err := pyfmt.Parse("toto")
	r.Nil(err)
	r.Equal(0, len(f.Fields))
	r.Equal(1, len(f.Sections))
	r.Equal("toto", f.Sections[0])
	r.True(f.IsStatic())
	r.Equal("toto", f.Format(nil))
}

func (suite *Suite) TestParseMethod() {
	r := suite.Require()
	f, err := pyfmt.Parse("{1.lower()}")
	r.Nil(err)
	r.Equal(1, len(f.Fields))
	r.Equal(1, len(f.Sections))
	r.Equal("1", f.Fields[0].FieldName)
	r.Equal("lower()", f.Fields[0].Method)
}

func (suite *Suite) TestParseUnknownMethod() {
	r := suite.Require()
	_, err := pyfmt.Parse("{0.title()}")
	r.ErrorContains(err, "unknown method title()")

	_, err = pyfmt.Parse("{upper()}")
	r.Nil(err)
}

func (suite *Suite) TestParseCombination() {
	r := suite.Require()

	f, err := pyfmt.Parse("ext_{0}")
	r.Nil(err)
	r.Equal(2, len(f.Sections))
	r.Equal("ext_", f.Sections[0])
	r.Equal("0", f.Fields[0].FieldName)
}

func (suite *Suite) TestParseEscaped() {
	r := suite.Require()
	f, err := pyfmt.Parse("literal {{toto}} pouet")
	r.Nil(err)
	r.Equal(2, len(f.Sections))
	r.Equal(0, len(f.Fields))
	r.Equal("literal {", f.Sections[0])
	r.Equal("toto} pouet", f.Sections[1])
}

func (suite *Suite) TestParseUnterminatedField() {
	r := suite.Require()
	_, err := pyfmt.Parse("literal{unterminated_field")
	r.Error(err)
}

func (suite *Suite) TestParseConversion() {
	r := suite.Require()
	f, err := pyfmt.Parse("{!r}")
	r.Nil(err)
	r.Equal(1, len(f.Fields))
	r.Equal("0", f.Fields[0].FieldName)
	r.Equal("r", f.Fields[0].Conversion)

	_, err = pyfmt.Parse("{!a}")
	r.ErrorContains(err, "unknown conversion")
}

func (suite *Suite) TestParseSpec() {
	r := suite.Require()
	f, err := pyfmt.Parse("{:>30}")
	r.Nil(err)
	r.Equal(1, len(f.Fields))
	r.Equal(&pyfmt.Field{FieldName: "0", Conversion: "", FormatSpec: ">30"}, f.Fields[0])

	_, err = pyfmt.Parse("{:>x}")
	r.Error(err)
}

func (suite *Suite) TestParseConversionAndSpec() {
	r := suite.Require()

	f, err := pyfmt.Parse("{0!r:>30}")
	r.Nil(err)
	r.Equal(1, len(f.Fields))
	r.Equal(&pyfmt.Field{FieldName: "0", Conversion: "r", FormatSpec: ">30"}, f.Fields[0])
}

func (suite *Suite) TestParseAutomaticNumbering() {
	r := suite.Require()

	f, err := pyfmt.Parse("{}-{}")
	r.Nil(err)
	r.Equal("0", f.Fields[0].FieldName)
	r.Equal("1", f.Fields[1].FieldName)

	_, err = pyfmt.Parse("{}-{1}")
	r.ErrorContains(err, "automatic field numbering to manual")

	_, err = pyfmt.Parse("{1}-{}")
	r.ErrorContains(err, "manual field numbering to automatic")
}

func (suite *Suite) TestFormat() {
	r := suite.Require()

	f, err := pyfmt.Parse("ext_{0}_{1.upper()}")
	r.Nil(err)

	s := f.Format(map[string]string{
		"0": "dba",
		"1": "alice",
	})
	r.Equal("ext_dba_ALICE", s)
}

func (suite *Suite) TestFormatTuple() {
	r := suite.Require()

	f, err := pyfmt.Parse("{0.slug()}|{1.identifier()}|{1.string()}|{0!r}")
	r.Nil(err)
	r.Equal(`hello-world|"o'neil"|'o''neil'|'Hello World'`, f.FormatTuple([]string{"Hello World", "o'neil"}))
}

func (suite *Suite) TestFormatRepr() {
	r := suite.Require()

	f, err := pyfmt.Parse("{!r}")
	r.Nil(err)
	for value, expected := range map[string]string{
		"letters":      `'letters'`,
		"o'neil":       `"o'neil"`,
		`say "o'neil"`: `'say "o\'neil"'`,
		`C:\tmp`:       `'C:\\tmp'`,
		"tab\there":    `'tab\there'`,
		"\x00\x7f":     `'\x00\x7f'`,
		"été":          `'été'`,
		"\u00a0":       `'\xa0'`,
		"\u200b":       `'\u200b'`,
		"\xff":         `'\xff'`,
	} {
		r.Equal(expected, f.FormatTuple([]string{value}), value)
	}
}

func (suite *Suite) TestFormatPadding() {
	r := suite.Require()

	f, err := pyfmt.Parse("[{:>4}][{:<4}][{:*^5}][{:2}]")
	r.Nil(err)
	r.Equal("[  ab][ab  ][*ab**][abc]", f.FormatTuple([]string{"ab", "ab", "ab", "abc"}))
}

func (suite *Suite) TestDefault() {
	r := suite.Require()

	r.Equal("A 1 x", pyfmt.Default(3).FormatTuple([]string{"A", "1", "x"}))
	r.Equal("", pyfmt.Default(0).FormatTuple(nil))
}

func (suite *Suite) TestPositions() {
	r := suite.Require()

	f, err := pyfmt.Parse("{2}{0.upper()}")
	r.Nil(err)
	positions, err := f.Positions()
	r.Nil(err)
	r.Equal([]int{2, 0}, positions)

	f, err = pyfmt.Parse("{member.cn}")
	r.Nil(err)
	_, err = f.Positions()
	r.ErrorContains(err, "not a position")
}

func (suite *Suite) TestListExpressions() {
	r := suite.Require()

	f0, _ := pyfmt.Parse("{0}{1}")
	f1, _ := pyfmt.Parse("{1}{2}")
	r.ElementsMatch([]string{"0", "1", "2"}, pyfmt.ListExpressions(f0, f1).ToSlice())
	r.True(pyfmt.ListExpressions(pyfmt.Default(0)).IsEmpty())
}
