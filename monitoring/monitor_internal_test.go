package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	"github.com/gorilla/mux"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/loopkit/loopkit/update"
)

type sampleReceiver struct {
	*update.ReceiverBase

	count int
	total update.Ticks
}

func newSampleReceiver(name string) *sampleReceiver {
	return &sampleReceiver{ReceiverBase: update.NewReceiverBase(name)}
}

func (r *sampleReceiver) Update(elapsed update.Ticks) {
	r.count++
	r.total += elapsed
}

var _ = Describe("Monitor", func() {
	var (
		registry *update.Registry
		m        *Monitor
	)

	BeforeEach(func() {
		registry = update.NewRegistry(update.NewVirtualClock())
		m = NewMonitor()
		m.RegisterRegistry(registry)
	})

	It("should report registry status", func() {
		registry.Register(newSampleReceiver("Blinker"))
		registry.Dispatch(30)

		w := httptest.NewRecorder()
		m.status(w, httptest.NewRequest("GET", "/api/status", nil))

		rsp := statusRsp{}
		Expect(json.NewDecoder(w.Body).Decode(&rsp)).To(Succeed())
		Expect(rsp.Size).To(Equal(1))
		Expect(rsp.Dispatches).To(Equal(uint64(1)))
		Expect(rsp.LastElapsed).To(Equal(uint32(30)))
	})

	It("should list receivers in registration order", func() {
		registry.Register(newSampleReceiver("Blinker"))
		registry.Register(newSampleReceiver("Debouncer"))

		w := httptest.NewRecorder()
		m.listReceivers(w, httptest.NewRequest("GET", "/api/receivers", nil))

		rsp := []receiverRsp{}
		Expect(json.NewDecoder(w.Body).Decode(&rsp)).To(Succeed())
		Expect(rsp).To(HaveLen(2))
		Expect(rsp[0].Name).To(Equal("Blinker"))
		Expect(rsp[1].Name).To(Equal("Debouncer"))
		Expect(rsp[0].Debug).To(BeFalse())
	})

	It("should toggle the debug mode", func() {
		rcv := newSampleReceiver("Blinker")
		registry.Register(rcv)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/debug/on", nil)
		req = mux.SetURLVars(req, map[string]string{"mode": "on"})
		m.setDebugMode(w, req)

		Expect(w.Code).To(Equal(200))
		Expect(rcv.DebugMode()).To(BeTrue())
	})

	It("should reject an unknown debug mode", func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/debug/loud", nil)
		req = mux.SetURLVars(req, map[string]string{"mode": "loud"})
		m.setDebugMode(w, req)

		Expect(w.Code).To(Equal(400))
	})

	It("should trigger an explicit dispatch", func() {
		rcv := newSampleReceiver("Blinker")
		registry.Register(rcv)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/dispatch/50", nil)
		req = mux.SetURLVars(req, map[string]string{"elapsed": "50"})
		m.dispatch(w, req)

		Expect(w.Code).To(Equal(200))
		Expect(rcv.count).To(Equal(1))
		Expect(rcv.total).To(Equal(update.Ticks(50)))
	})

	It("should reject an invalid elapsed value", func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/dispatch/soon", nil)
		req = mux.SetURLVars(req, map[string]string{"elapsed": "soon"})
		m.dispatch(w, req)

		Expect(w.Code).To(Equal(400))
	})
})
