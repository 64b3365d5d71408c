package errors

import "errors"

// ErrSnapshotMiss 看板快照未命中缓存
var ErrSnapshotMiss = errors.New("看板快照不存在或已过期")
