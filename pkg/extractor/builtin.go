package extractor

import "github.com/jmylchreest/ordermail/pkg/platform"

// Building blocks shared by the compiled-in patterns.
const (
	currencyExpr = `(?:₹|\brs\.?|\binr)\s*`
	// amountExpr ends on a digit so trailing separators are not captured.
	amountExpr = `(\d[\d,]*\d(?:\.\d{1,2})?|\d(?:\.\d{1,2})?)`
	// amountLabelGap allows short qualifiers such as "(incl. taxes):" between label and currency.
	amountLabelGap = `\b[^\n\d₹]{0,30}?`

	idTokenExpr = `([a-z]{0,6}\d[a-z0-9-]{3,40})`

	monthExpr   = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
	weekdayExpr = `(?:(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*\.?,?\s+)?`
	dayExpr     = `\d{1,2}(?:st|nd|rd|th)?`
	dateExpr    = `(` + weekdayExpr + `(?:` +
		dayExpr + `\s+` + monthExpr + `\.?,?(?:\s+\d{4})?` +
		`|` + monthExpr + `\.?\s+` + dayExpr + `(?:,?\s+\d{4})?` +
		`|\d{1,2}[/.-]\d{1,2}[/.-]\d{4}` +
		`|\d{4}[/-]\d{1,2}[/-]\d{1,2}` +
		`))\b`

	carrierExpr = `blue\s?dart|delhivery|ekart(?:\s+logistics)?|xpressbees|ecom\s+express|shadowfax|dtdc|india\s+post|speed\s+post|amazon\s+(?:shipping|transportation\s+services)|fedex|dhl|gati|valmo|shiprocket`
)

var genericPatterns = PatternSet{
	FieldOrderID: {
		mustPattern(FieldOrderID, `(?i)\border\s*(?:id|no\.?|number)\s*[:#]?\s*#?\s*`+idTokenExpr, 1, 80),
		mustPattern(FieldOrderID, `(?i)\border\s*#\s*`+idTokenExpr, 1, 75),
		mustPattern(FieldOrderID, `(?i)\b(?:booking|reference|ref)\s*(?:id|no\.?|number)?\s*[:#]\s*`+idTokenExpr, 1, 60),
	},
	FieldAmount: {
		mustPattern(FieldAmount, `(?i)\b(?:grand\s+total|order\s+total|total\s+amount|amount\s+paid|amount\s+payable|total\s+payable|total\s+paid|net\s+amount|total)`+amountLabelGap+currencyExpr+amountExpr, 1, 70),
		mustPattern(FieldAmount, `(?i)`+currencyExpr+amountExpr, 1, 40),
	},
	FieldProductName: {
		mustPattern(FieldProductName, `(?im)^(?:item|product|item\s+name|product\s+name|item\s+description)\s*[:\-]\s*([^\n]{2,150})$`, 1, 80),
		mustPattern(FieldProductName, `(?i)\byou(?:'ve|\s+have)?\s+(?:ordered|purchased)\s*:\s*([^\n]{2,150})`, 1, 60),
		mustPattern(FieldProductName, `(?im)^([^\n]{2,150}?)\s+(?:qty|quantity)\s*:?\s*\d+\s*$`, 1, 40),
	},
	FieldExpectedDelivery: {
		mustPattern(FieldExpectedDelivery, `(?i)\b(?:expected|estimated)\s+(?:delivery|arrival)(?:\s+date)?\s*(?:by|on)?\s*[:\-]?\s*`+dateExpr, 1, 80),
		mustPattern(FieldExpectedDelivery, `(?i)\bwill\s+be\s+delivered\s+(?:by|on)\s+`+dateExpr, 1, 70),
		mustPattern(FieldExpectedDelivery, `(?i)\b(?:delivery|delivered|arriving|arrives|arrival)\s+(?:by|on|date)?\s*[:\-]?\s*`+dateExpr, 1, 60),
	},
	FieldCarrierName: {
		mustPattern(FieldCarrierName, `(?i)\b(?:courier|carrier|courier\s+partner|delivery\s+partner|shipping\s+partner|shipped\s+(?:via|with|through|by))\s*(?:name)?\s*[:\-]?\s*(`+carrierExpr+`)\b`, 1, 80),
		mustPattern(FieldCarrierName, `(?i)\b(?:courier|carrier|courier\s+partner|delivery\s+partner|shipping\s+partner)\s*(?:name)?\s*[:\-]\s*([a-z][a-z .&]{1,38}[a-z])`, 1, 60),
		mustPattern(FieldCarrierName, `(?i)\b(`+carrierExpr+`)\b`, 1, 40),
	},
	FieldTrackingID: {
		mustPattern(FieldTrackingID, `(?i)\b(?:tracking|awb|waybill|consignment)\s*(?:id|no\.?|number|#)?\s*[:#\-]?\s*([a-z]{0,6}\d[a-z0-9]{5,34})\b`, 1, 80),
	},
}

var builtinPatterns = PatternPack{
	platform.Generic: genericPatterns,
	platform.Flipkart: {
		FieldOrderID: {
			mustPattern(FieldOrderID, `\b(OD\d{15,21})\b`, 1, 100),
		},
		FieldAmount: {
			mustPattern(FieldAmount, `(?i)\b(?:amount\s+paid|total\s+amount|order\s+total)`+amountLabelGap+currencyExpr+amountExpr, 1, 95),
		},
		FieldExpectedDelivery: {
			mustPattern(FieldExpectedDelivery, `(?i)\bdelivery\s+by\s+`+dateExpr, 1, 90),
		},
		FieldCarrierName: {
			mustPattern(FieldCarrierName, `(?i)\b(ekart(?:\s+logistics)?)\b`, 1, 90),
		},
		FieldTrackingID: {
			mustPattern(FieldTrackingID, `\b(FMP[CP]\d{10,14})\b`, 1, 95),
		},
	},
	platform.Amazon: {
		FieldOrderID: {
			mustPattern(FieldOrderID, `\b(\d{3}-\d{7}-\d{7})\b`, 1, 100),
		},
		FieldAmount: {
			mustPattern(FieldAmount, `(?i)\b(?:order\s+total|grand\s+total)`+amountLabelGap+currencyExpr+amountExpr, 1, 95),
		},
		FieldExpectedDelivery: {
			mustPattern(FieldExpectedDelivery, `(?i)\b(?:arriving|arrives|guaranteed\s+delivery)\s*:?\s*(?:on|by)?\s*`+dateExpr, 1, 90),
		},
		FieldCarrierName: {
			mustPattern(FieldCarrierName, `(?i)\b(amazon\s+(?:shipping|transportation\s+services|logistics))\b`, 1, 85),
		},
	},
	platform.Myntra: {
		FieldOrderID: {
			mustPattern(FieldOrderID, `(?i)\border\s*(?:no|number|id)\.?\s*[:#]?\s*(\d{7}-\d{7}-\d{7}(?:-\d{2})?|\d{10,22})\b`, 1, 95),
		},
		FieldAmount: {
			mustPattern(FieldAmount, `(?i)\b(?:total\s+paid|amount\s+paid|total\s+amount)`+amountLabelGap+currencyExpr+amountExpr, 1, 95),
		},
	},
	platform.Ajio: {
		FieldOrderID: {
			mustPattern(FieldOrderID, `(?i)\border\s*(?:no|number|id)\.?\s*[:#]?\s*(FN\d{8,12}|\d{9,14})\b`, 1, 95),
		},
	},
	platform.Meesho: {
		FieldOrderID: {
			mustPattern(FieldOrderID, `\b(\d{15,20}_\d{1,3})\b`, 1, 100),
		},
		FieldAmount: {
			mustPattern(FieldAmount, `(?i)\b(?:total\s+amount|amount\s+to\s+be\s+paid|order\s+total)`+amountLabelGap+currencyExpr+amountExpr, 1, 95),
		},
		FieldCarrierName: {
			mustPattern(FieldCarrierName, `(?i)\b(valmo|delhivery|xpressbees|shadowfax|ecom\s+express)\b`, 1, 90),
		},
	},
	platform.Nykaa: {
		FieldOrderID: {
			mustPattern(FieldOrderID, `(?i)\border\s*(?:no|number|id)\.?\s*[:#]?\s*(NYK[-a-z0-9]{4,20}|\d{9,14})\b`, 1, 95),
		},
		FieldAmount: {
			mustPattern(FieldAmount, `(?i)\b(?:grand\s+total|order\s+total|amount\s+paid)`+amountLabelGap+currencyExpr+amountExpr, 1, 95),
		},
	},
}

// Builtin returns a copy of the compiled-in pattern pack.
func Builtin() PatternPack {
	return PatternPack{}.Merge(builtinPatterns)
}
