package descriptor

import "github.com/vk/ibisgo/internal/kw"

// Fixture builders shared by the descriptor and curve tests. The driver
// model's curves are crafted so that both branches measure 50 ohms at
// vmeas = 0.6: samples (0.5 V, 10 mA) and (0.7 V, 14 mA) give
// 0.2 / 0.004 = 50.

func driverModelMapping() *kw.Map {
	m := kw.New()
	m.Set("model_type", "Output")
	m.Set("c_comp", 1.0e-12)
	m.Set("vmeas", 0.6)
	m.Set("temperature_range", kw.Triple{Typ: 25, Min: 0, Max: 100})
	m.Set("voltage_range", kw.Triple{Typ: 1.8, Min: 1.62, Max: 1.98})
	m.Set("ramp", kw.Ramp{
		Rising:  kw.Triple{Typ: 1.0, Min: 0.9, Max: 1.1},
		Falling: kw.Triple{Typ: 1.0, Min: 0.9, Max: 1.1},
	})
	m.Set("pulldown", fiftyOhmCurve())
	m.Set("pullup", fiftyOhmCurve())
	m.Set("algorithmic_model", []kw.ExecEntry{
		{OS: "Windows", Bits: 64, Files: []string{"drv_x64.dll", "drv_x64.ami"}},
		{OS: "linux", Bits: 64, Files: []string{"drv_x64.so", "drv_x64.ami"}},
		{OS: "Windows", Bits: 32, Files: []string{"drv_x86.dll", "drv_x86.ami"}},
	})
	return m
}

func fiftyOhmCurve() []kw.IVSample {
	return []kw.IVSample{
		{V: 0.5, I: kw.Triple{Typ: 0.010, Min: 0.009, Max: 0.011}},
		{V: 0.7, I: kw.Triple{Typ: 0.014, Min: 0.013, Max: 0.015}},
	}
}

func receiverModelMapping() *kw.Map {
	m := kw.New()
	m.Set("model_type", "Input")
	m.Set("voltage_range", kw.Triple{Typ: 1.8, Min: 1.62, Max: 1.98})
	return m
}

func componentMappingFor(pins map[string]string, order []string) *kw.Map {
	m := kw.New()
	m.Set("manufacturer", "Acme Devices")
	m.Set("package", kw.RLC{R: 0.1, L: 2e-9, C: 1e-12})
	pinMap := kw.New()
	for _, name := range order {
		pinMap.Set(name, kw.PinRef{Model: pins[name], RLC: kw.RLC{R: 0.05, L: 1e-9, C: 5e-13}})
	}
	m.Set("pin", pinMap)
	return m
}

// testMapping builds a two-component fixture: component "A" mixes driving
// and receiving pins (one through the "SEL" selector), component "B" has
// one of each.
func testMapping() *kw.Map {
	root := kw.New()
	root.Set("ibis_ver", 4.1)
	root.Set("file_name", "fixture.ibs")
	root.Set("file_rev", "1.1")

	comps := kw.New()
	comps.Set("A", componentMappingFor(map[string]string{
		"1": "SEL",
		"2": "RCV",
		"3": "DRV",
	}, []string{"1", "2", "3"}))
	comps.Set("B", componentMappingFor(map[string]string{
		"4": "RCV",
		"5": "SEL",
	}, []string{"4", "5"}))
	root.Set("components", comps)

	models := kw.New()
	models.Set("DRV", driverModelMapping())
	drv2 := driverModelMapping()
	drv2.Set("model_type", "I/O")
	models.Set("DRV2", drv2)
	models.Set("RCV", receiverModelMapping())
	root.Set("models", models)

	sels := kw.New()
	sels.Set("SEL", []kw.SelectorAlt{
		{Model: "DRV", RLC: kw.RLC{R: 0.05}},
		{Model: "DRV2", RLC: kw.RLC{R: 0.07}},
	})
	root.Set("model_selectors", sels)

	return root
}
