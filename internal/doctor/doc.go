// Package doctor runs diagnostic checks against a lognerd setup: the config
// file, runtime detection, the log directory and rotated file retention.
//
// Checks implement [Check] and are aggregated by a [Runner] into a
// [Report]:
//
//	r := doctor.NewRunner()
//	r.AddCheck(doctor.NewRuntimeCheck(env.New(), platform.Host()))
//	report := r.Run(ctx)
//	if report.Worst() == doctor.SeverityError {
//	    ...
//	}
package doctor
