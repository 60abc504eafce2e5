// Package monitoring turns a running control loop into a small web server so
// that the registry can be inspected and poked from outside the process.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"

	"github.com/loopkit/loopkit/update"
)

// Monitor exposes the state of a registry over HTTP. The mutating endpoints
// (debug toggle, explicit dispatch) are meant for interactive use while the
// control loop is idle; the registry itself is not synchronized.
type Monitor struct {
	registry   *update.Registry
	portNumber int

	url string
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterRegistry registers the registry to be monitored.
func (m *Monitor) RegisterRegistry(r *update.Registry) {
	m.registry = r
}

// StartServer starts the monitor as a web server with a custom port if wanted.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/status", m.status)
	r.HandleFunc("/api/receivers", m.listReceivers)
	r.HandleFunc("/api/debug/{mode}", m.setDebugMode)
	r.HandleFunc("/api/dispatch/{elapsed}", m.dispatch)
	r.HandleFunc("/api/resource", m.listResources)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring control loop with %s\n", m.url)

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()
}

// URL returns the address the monitor serves on. It is empty before
// StartServer is called.
func (m *Monitor) URL() string {
	return m.url
}

// OpenStatusPage opens the status endpoint in the default browser.
func (m *Monitor) OpenStatusPage() {
	err := browser.OpenURL(m.url + "/api/status")
	dieOnErr(err)
}

type statusRsp struct {
	Size        int    `json:"size"`
	Dispatches  uint64 `json:"dispatches"`
	LastElapsed uint32 `json:"last_elapsed"`
}

func (m *Monitor) status(w http.ResponseWriter, _ *http.Request) {
	rsp := statusRsp{
		Size:        m.registry.Size(),
		Dispatches:  m.registry.DispatchCount(),
		LastElapsed: uint32(m.registry.LastElapsed()),
	}

	err := json.NewEncoder(w).Encode(rsp)
	dieOnErr(err)
}

type receiverRsp struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Debug bool   `json:"debug"`
}

func (m *Monitor) listReceivers(w http.ResponseWriter, _ *http.Request) {
	receivers := m.registry.Receivers()

	rsp := make([]receiverRsp, 0, len(receivers))
	for _, r := range receivers {
		rsp = append(rsp, receiverRsp{
			ID:    r.ID(),
			Name:  r.Name(),
			Debug: r.DebugMode(),
		})
	}

	err := json.NewEncoder(w).Encode(rsp)
	dieOnErr(err)
}

func (m *Monitor) setDebugMode(w http.ResponseWriter, r *http.Request) {
	mode := mux.Vars(r)["mode"]

	switch mode {
	case "on":
		m.registry.SetDebugMode(true)
	case "off":
		m.registry.SetDebugMode(false)
	default:
		w.WriteHeader(400)
		fmt.Fprintf(w, "Error: unknown debug mode %q", mode)
		return
	}

	w.WriteHeader(200)
}

func (m *Monitor) dispatch(w http.ResponseWriter, r *http.Request) {
	elapsedStr := mux.Vars(r)["elapsed"]

	elapsed, err := strconv.ParseUint(elapsedStr, 10, 32)
	if err != nil {
		w.WriteHeader(400)
		fmt.Fprintf(w, "Error: invalid elapsed value %q", elapsedStr)
		return
	}

	m.registry.Dispatch(update.Ticks(elapsed))
	w.WriteHeader(200)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	err = json.NewEncoder(w).Encode(rsp)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
