package stjpv

import (
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// NewLogger builds a logfmt logger tagged with subsys, the same shape
// SCLogInit produces for a spacecraft: one synchronised writer to
// stdout, with the caller's identity attached to every line rather than
// repeated in every call site.
func NewLogger(subsys string) kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "subsys", subsys, "ts", kitlog.DefaultTimestampUTC)
	return klog
}
