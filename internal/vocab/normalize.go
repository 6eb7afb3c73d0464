package vocab

// Normalize derives the display fields for an item.
//
// One import path stored the meaning in SecondaryText and the reading in
// Meaning. When Meaning contains non-Latin characters while SecondaryText is
// a non-empty Latin string, the two are treated as swapped. Items whose
// meaning legitimately mixes scripts can be misclassified.
func Normalize(item StudyItem) DisplayContent {
	dc := DisplayContent{
		Term:    item.PrimaryText,
		Reading: item.SecondaryText,
		English: item.Meaning,
	}
	if !IsLatin(item.Meaning) && item.SecondaryText != "" && IsLatin(item.SecondaryText) {
		dc.Reading = item.Meaning
		dc.English = item.SecondaryText
	}
	return dc
}

// IsLatin reports whether s consists only of printable 7-bit ASCII.
// The empty string is Latin.
func IsLatin(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return false
		}
	}
	return true
}
