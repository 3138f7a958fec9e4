package service

import "testing"

func TestSystemSettingServiceDefaults(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewSystemSettingService(gdb, SystemSettings{WhatsAppTo: "+15550001111", RemindersEnabled: true})

	settings, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}
	if settings.WhatsAppTo != "whatsapp:+15550001111" {
		t.Fatalf("unexpected default recipient %s", settings.WhatsAppTo)
	}
	if !settings.RemindersEnabled {
		t.Fatal("expected reminders enabled by default")
	}
}

func TestSystemSettingServiceUpdate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewSystemSettingService(gdb, SystemSettings{WhatsAppTo: "+15550001111", RemindersEnabled: true})

	updated, err := svc.UpdateSettings(SystemSettingsInput{WhatsAppTo: "+15559998888", RemindersEnabled: false})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.WhatsAppTo != "whatsapp:+15559998888" || updated.RemindersEnabled {
		t.Fatalf("unexpected update result %+v", updated)
	}

	reloaded, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded != updated {
		t.Fatalf("expected persisted settings %+v, got %+v", updated, reloaded)
	}

	// 再次更新走 upsert，且空号码回退到默认值
	cleared, err := svc.UpdateSettings(SystemSettingsInput{WhatsAppTo: " ", RemindersEnabled: true})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if cleared.WhatsAppTo != "whatsapp:+15550001111" || !cleared.RemindersEnabled {
		t.Fatalf("unexpected cleared settings %+v", cleared)
	}

	reloaded, _ = svc.GetSettings()
	if reloaded != cleared {
		t.Fatalf("expected %+v after reload, got %+v", cleared, reloaded)
	}
}
