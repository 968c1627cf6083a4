package flights

// AirlineAliases maps IATA airline codes to the ICAO prefixes their
// callsigns are flown under. Some carriers operate under several prefixes,
// Norwegian most notably.
var AirlineAliases = map[string][]string{
	"DY": {"NOZ", "NSZ", "NAX"},
	"SK": {"SAS", "SZS"},
	"LH": {"DLH"},
	"WF": {"WIF"},
	"KL": {"KLM"},
	"BA": {"BAW"},
	"AF": {"AFR"},
	"TK": {"THY"},
	"AY": {"FIN"},
	"LX": {"SWR"},
	"OS": {"AUA"},
	"SN": {"BEL"},
	"LO": {"LOT"},
	"IB": {"IBE"},
	"EI": {"EIN"},
	"AZ": {"ITY", "AZA"},
	"UA": {"UAL"},
	"AA": {"AAL"},
	"DL": {"DAL"},
	"QR": {"QTR"},
	"EK": {"UAE"},
	"SU": {"AFL"},
	"RJ": {"RJA"},
	"HV": {"TRA"},
	"TO": {"TVF"},
	"FR": {"RYR", "MAY"},
	"XQ": {"SXS"},
	"T7": {"T7M"},
}

// allowedPrefixes builds the callsign prefix allow-list for an IATA code:
// its known ICAO aliases plus the IATA code itself.
func allowedPrefixes(iata string) []string {
	out := append([]string{}, AirlineAliases[iata]...)
	return append(out, iata)
}
