// Package netclient is a placeholder client-side counterpart to sim.Simulation.
// A Client holds only an update counter: it runs no cmdbuf.Buffer, no bitio
// codec and no prediction/reconciliation layer.
package netclient

// Client is the client-side handle exposed across the C ABI. It exists
// so cmd/libnetcode has a distinct, independently-lifecycled object to
// hand out alongside sim.Simulation, without implying client and server
// share update semantics.
type Client struct {
	updates int
}

// New returns a freshly constructed Client.
func New() *Client {
	return &Client{}
}

// Update advances the client by one host tick. It currently only tracks
// how many times it has been called.
func (c *Client) Update() {
	c.updates++
}

// Updates reports how many times Update has been called.
func (c *Client) Updates() int {
	return c.updates
}
