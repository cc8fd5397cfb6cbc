//go:build linux

package thread

/*
   #define _GNU_SOURCE
   #include <sched.h>
   #include <pthread.h>

   int set_cpu_affinity(int core_id) {
       cpu_set_t cpuset;
       CPU_ZERO(&cpuset);
       CPU_SET(core_id, &cpuset);
       return pthread_setaffinity_np(pthread_self(), sizeof(cpu_set_t), &cpuset);
   }
*/
import "C"

import (
	"runtime"
	"syscall"

	"github.com/pkg/errors"
)

func SetCPUAffinity(coreID int) error {
	if rc := C.set_cpu_affinity(C.int(coreID)); rc != 0 {
		return errors.Wrapf(syscall.Errno(rc), "Can not pin thread to core %d", coreID)
	}
	return nil
}

// Pin locks the calling goroutine to its OS thread and binds that thread to
// coreID. The returned function releases the lock.
func Pin(coreID int) (func(), error) {
	runtime.LockOSThread()
	if err := SetCPUAffinity(coreID); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	return runtime.UnlockOSThread, nil
}
