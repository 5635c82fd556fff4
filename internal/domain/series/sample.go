package series

// Sample returns a fresh copy of the bundled TSLA daily series
// (2025-05-06 through 2025-05-19), newest first as the API delivers it.
func Sample() *Dataset {
	ds := New(MetaData{
		Information:   "Daily Prices (open, high, low, close) and Volumes",
		Symbol:        "TSLA",
		LastRefreshed: "2025-05-19",
		OutputSize:    "Compact",
		TimeZone:      "US/Eastern",
	})

	rows := []struct {
		date string
		rec  PriceRecord
	}{
		{"2025-05-19", PriceRecord{"336.3000", "343.0000", "333.3700", "342.0900", "88869853"}},
		{"2025-05-16", PriceRecord{"346.2400", "351.6200", "342.3300", "349.9800", "95895665"}},
		{"2025-05-15", PriceRecord{"340.3400", "346.1393", "334.7153", "342.8200", "97882596"}},
		{"2025-05-14", PriceRecord{"342.5000", "350.0000", "337.0000", "347.6800", "136997264"}},
		{"2025-05-13", PriceRecord{"320.0000", "337.5894", "316.8000", "334.0700", "136992574"}},
		{"2025-05-12", PriceRecord{"321.9900", "322.2100", "311.5000", "318.3800", "112826661"}},
		{"2025-05-09", PriceRecord{"290.2100", "307.0400", "290.0000", "298.2600", "132387835"}},
		{"2025-05-08", PriceRecord{"279.6300", "289.8000", "279.4100", "284.8200", "97539448"}},
		{"2025-05-07", PriceRecord{"276.8800", "277.9200", "271.0000", "276.2200", "71882408"}},
		{"2025-05-06", PriceRecord{"273.1050", "277.7300", "271.3500", "275.3500", "76715792"}},
	}
	for _, row := range rows {
		ds.Series.Set(row.date, row.rec)
	}
	return ds
}
