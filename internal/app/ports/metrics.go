package ports

import "idlarz/internal/domain/realm"

type ActionMetrics interface {
	RecordSuccess(resultCode realm.ResultCode)
	RecordRejected(reason string)
	RecordConflict()
	RecordFailure()
}
