package series

// MetaData holds the informational header of a daily series response.
// Nothing in the shift reads it.
type MetaData struct {
	Information   string `json:"1. Information" yaml:"1. Information"`
	Symbol        string `json:"2. Symbol" yaml:"2. Symbol"`
	LastRefreshed string `json:"3. Last Refreshed" yaml:"3. Last Refreshed"`
	OutputSize    string `json:"4. Output Size" yaml:"4. Output Size"`
	TimeZone      string `json:"5. Time Zone" yaml:"5. Time Zone"`
}

type Dataset struct {
	Meta   MetaData    `json:"Meta Data" yaml:"Meta Data"`
	Series *TimeSeries `json:"Time Series (Daily)" yaml:"Time Series (Daily)"`
}

func New(meta MetaData) *Dataset {
	return &Dataset{Meta: meta, Series: NewTimeSeries()}
}

func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Series = d.Series.Clone()
	return &cp
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return d.Series.Len()
}
