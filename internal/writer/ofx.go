package writer

import (
	"fmt"
	"strings"
	"time"

	"github.com/yuhtools/yuh2ofx/internal/models"
	"github.com/yuhtools/yuh2ofx/internal/parser"
)

// bankID is the fixed institution id emitted in BANKACCTFROM.
const bankID = "SWQBCHZZXXX"

// OFXGenerator renders a parsed statement file as an OFX 2 XML document.
// The tag layout is the one the downstream finance tools import; it is part
// of the output contract and not negotiable, which is why this is a template
// rather than a generic OFX marshaller.
type OFXGenerator struct {
	// Currency is emitted as the account id.
	Currency string
	// Now supplies the server timestamp; tests pin it. Defaults to time.Now.
	Now func() time.Time
}

func NewOFXGenerator(currency string) *OFXGenerator {
	return &OFXGenerator{Currency: strings.ToUpper(currency), Now: time.Now}
}

func (g *OFXGenerator) Generate(parsed *models.ParsedFile) string {
	var b strings.Builder
	g.writeHeader(&b)
	g.writeStatements(&b, parsed)
	g.writeTrailer(&b)
	return b.String()
}

func (g *OFXGenerator) writeHeader(b *strings.Builder) {
	now := time.Now()
	if g.Now != nil {
		now = g.Now()
	}
	fmt.Fprintf(b, `<?xml version="1.0" encoding="utf-8" ?>
<?OFX OFXHEADER="200" VERSION="202" SECURITY="NONE" OLDFILEUID="NONE" NEWFILEUID="NONE"?>
<OFX>
  <SIGNONMSGSRSV1>
    <SONRS>
      <STATUS>
        <CODE>0</CODE>
        <SEVERITY>INFO</SEVERITY>
      </STATUS>
      <DTSERVER>%s</DTSERVER>
      <LANGUAGE>ENG</LANGUAGE>
    </SONRS>
  </SIGNONMSGSRSV1>
  <BANKMSGSRSV1>
    <STMTTRNRS>
      <TRNUID>0</TRNUID>
      <STATUS>
        <CODE>0</CODE>
        <SEVERITY>INFO</SEVERITY>
      </STATUS>
`, parser.FormatDate(now))
}

func (g *OFXGenerator) writeStatements(b *strings.Builder, parsed *models.ParsedFile) {
	header := parsed.Header
	fmt.Fprintf(b, `      <STMTRS>
        <CURDEF>%s</CURDEF>
        <BANKACCTFROM>
          <BANKID>%s</BANKID>
          <ACCTID>%s</ACCTID>
          <ACCTTYPE>CHECKING</ACCTTYPE>
        </BANKACCTFROM>
        <BANKTRANLIST>
          <DTSTART>%s</DTSTART>
          <DTEND>%s</DTEND>
`, header.Currency, bankID, g.Currency, parser.FormatDate(header.From), parser.FormatDate(header.To))

	for _, stmt := range parsed.Statements {
		fmt.Fprintf(b, `          <STMTTRN>
            <TRNTYPE>%s</TRNTYPE>
            <DTPOSTED>%s</DTPOSTED>
            <TRNAMT>%s</TRNAMT>
            <FITID>%s</FITID>
            <NAME>%s</NAME>
`, strings.ToUpper(string(stmt.Direction)), parser.FormatDate(stmt.Date),
			stmt.SignedAmount().StringFixed(2), escapeXML(stmt.Reference), escapeXML(stmt.Payee))
		if stmt.Memo != "" && stmt.Memo != stmt.Payee {
			fmt.Fprintf(b, "            <MEMO>%s</MEMO>\n", escapeXML(stmt.Memo))
		}
		b.WriteString("          </STMTTRN>\n")
	}

	fmt.Fprintf(b, `        </BANKTRANLIST>
        <LEDGERBAL>
          <BALAMT>%s</BALAMT>
          <DTASOF>%s</DTASOF>
        </LEDGERBAL>
      </STMTRS>
`, header.FinalBalance.StringFixed(2), parser.FormatDate(header.To))
}

func (g *OFXGenerator) writeTrailer(b *strings.Builder) {
	b.WriteString(`    </STMTTRNRS>
  </BANKMSGSRSV1>
</OFX>
`)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
