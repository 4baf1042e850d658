package almanac

// latin1 encodes s the way the tide tables are stored: one byte per
// character.
func latin1(s string) []byte {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xff {
			r = '?'
		}
		b = append(b, byte(r))
	}
	return b
}

// ilheusTable mimics the text layer of a printed tide table: headers,
// tabs, carriage returns and days split over several lines.
const ilheusTable = "MARINHA DO BRASIL\r\n" +
	"DIRETORIA DE HIDROGRAFIA E NAVEGAÇÃO\r\n" +
	"PORTO DE ILHÉUS (ESTADO DA BAHIA)\r\n" +
	"Latitude 14°47,0' S  Longitude 039°01,6' W  Fuso +03.0\r\n\r\n" +
	"JANEIRO\r\n" +
	"Dia\tHora\tAlt.(m)\r\n" +
	"01 QUI 0137 0.3 0744 1.9 1350 0.4 2002 2.0\r\n" +
	"30 SEX 0512 0.5 1123 1.8 1736 0.6 2349 1.7\r\n" +
	"31 SÁB 0603 0.6 1214 1.7 1830 0.7\r\n" +
	"\x00\x00\r\n" +
	"FEVEREIRO\r\n" +
	"01 DOM  0035 1.6\t0701 0.7 1312 1.6 1931 0.8\r\n" +
	"02 SEG 0137 1.5 0809 0.8\r\n" +
	"03 TER 0250 1.5 0921 0.8 1540 1.5 2207 0.8\r\n" +
	"04 QUA 0402 1.5 1033 0.8\r\n" +
	"04 QUA 1033 0.8 1651 1.4\r\n" +
	"05 QUI 0512 1.9 1110 0.3 1723 2.0 2334 0.4\r\n" +
	"Pág. 2\r\n" +
	"MARÇO\r\n" +
	"01 DOM 0100 2.2 0730 0.1\r\n"
