package series

import "fmt"

// PriceRecord is one day of open/high/low/close/volume. Values are kept
// exactly as the data source formatted them.
type PriceRecord struct {
	Open   string `json:"1. open" yaml:"1. open"`
	High   string `json:"2. high" yaml:"2. high"`
	Low    string `json:"3. low" yaml:"3. low"`
	Close  string `json:"4. close" yaml:"4. close"`
	Volume string `json:"5. volume" yaml:"5. volume"`
}

func (r PriceRecord) String() string {
	return fmt.Sprintf("{open: %s, high: %s, low: %s, close: %s, volume: %s}",
		r.Open, r.High, r.Low, r.Close, r.Volume)
}
