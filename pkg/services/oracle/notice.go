package oracle

import "sync"

const readOnlyMessage = "write operations return unsigned transaction payloads; nothing is signed or broadcast"

// Notice is a message logged at most once per Notice value.
type Notice struct {
	once sync.Once
	msg  string
}

func NewNotice(msg string) *Notice {
	return &Notice{msg: msg}
}

// Emit logs the message on the first call and reports whether this call was
// the one that logged it. Safe for concurrent use.
func (n *Notice) Emit() bool {
	emitted := false
	n.once.Do(func() {
		log.Infow(n.msg)
		emitted = true
	})
	return emitted
}

// readOnlyNotice lives for the whole process. It is initialised at package
// load and never reset; a restart is the only way to see it again.
var readOnlyNotice = NewNotice(readOnlyMessage)

// EmitReadOnlyNotice logs, once per process, that write-intent operations
// only prepare payloads.
func EmitReadOnlyNotice() bool {
	return readOnlyNotice.Emit()
}
