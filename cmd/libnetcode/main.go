// Command libnetcode exposes the simulation kernel, router and client
// stub across a C ABI so the embedding engine can drive a
// sim.Simulation without linking Go packages directly. Each exported
// function takes or returns an opaque handle produced by
// runtime/cgo.Handle, mirroring the owning-pointer discipline the
// original server/client modules implement with a boxed pointer and
// transmute.
package main

// #include <stddef.h>
import "C"

import (
	"log"
	"os"
	"runtime/cgo"
	"time"
	"unsafe"

	"github.com/kstasik/netcode/netclient"
	"github.com/kstasik/netcode/router"
	"github.com/kstasik/netcode/sim"
)

const (
	defaultFrameDuration = 16 * time.Millisecond
	defaultActorCapacity = 8
)

type server struct {
	sim    *sim.Simulation
	router *router.Router
}

//export server_create
func server_create() C.uintptr_t {
	logger := log.New(os.Stderr, "libnetcode: ", log.Lshortfile)
	s := sim.Start(0, defaultFrameDuration, defaultActorCapacity, 0, logger)
	srv := &server{sim: s, router: router.New(s, logger)}
	return C.uintptr_t(cgo.NewHandle(srv))
}

//export server_destroy
func server_destroy(handle C.uintptr_t) {
	h := cgo.Handle(handle)
	h.Delete()
}

//export server_update
func server_update(handle C.uintptr_t) {
	srv := cgo.Handle(handle).Value().(*server)
	srv.sim.Update(defaultFrameDuration)
}

//export server_read
func server_read(handle C.uintptr_t, buffer *C.uchar, nbytes C.size_t) {
	srv := cgo.Handle(handle).Value().(*server)
	data := C.GoBytes(unsafe.Pointer(buffer), C.int(nbytes))
	srv.router.Read(data, srv.sim.Head())
}

//export client_create
func client_create() C.uintptr_t {
	return C.uintptr_t(cgo.NewHandle(netclient.New()))
}

//export client_destroy
func client_destroy(handle C.uintptr_t) {
	cgo.Handle(handle).Delete()
}

//export client_update
func client_update(handle C.uintptr_t) {
	c := cgo.Handle(handle).Value().(*netclient.Client)
	c.Update()
}

func main() {}
