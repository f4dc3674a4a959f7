package transparency

import (
	"adtransparency-backend/lib/restyutil"
	"adtransparency-backend/lib/telemetry"
)

var tracer = telemetry.Tracer("scrapers/transparency")
var restyInstrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
