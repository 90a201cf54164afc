package web

// getHTMLTemplate returns the single-page chat UI.
func getHTMLTemplate() string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Chatbot with History</title>
    <link rel="stylesheet" href="/static/style.css">
</head>
<body>
    <div class="layout">
        <aside class="sidebar">
            <h2>⚙️ Settings</h2>

            <section>
                <h3>📝 Session Management</h3>
                <div class="info-box">Current session: <strong id="current-session"></strong></div>
                <button id="new-chat-btn" class="action-btn">➕ New Chat</button>
                <div id="session-list"></div>
                <button id="clear-btn" class="action-btn danger">🗑️ Clear Current Session</button>
                <div id="naming-tip" class="info-box hidden">💡 Your first message will automatically create a named session based on your question.</div>
            </section>

            <section>
                <h3>🤖 Model Info</h3>
                <div class="info-box">Model: {{.Model}}<br>Temperature: {{.Temperature}}</div>
            </section>

            <section>
                <h3>ℹ️ Instructions</h3>
                <ol class="instructions">
                    <li>Type your message and press Enter or Send</li>
                    <li>The chatbot remembers your conversation</li>
                    <li>Sessions are auto-named from your first question</li>
                    <li>Create new sessions for different topics</li>
                </ol>
            </section>
        </aside>

        <main class="main">
            <h1 class="main-header">💬 Chatbot with History</h1>
            <p class="sub-header">Powered by an OpenAI-compatible chat API</p>

            <div id="transcript" class="transcript"></div>
            <div id="error-box" class="error-box hidden"></div>

            <form id="chat-form" class="chat-form">
                <input id="chat-input" type="text" placeholder="Type your message here..." autocomplete="off">
                <button type="submit" id="send-btn">Send</button>
            </form>
        </main>
    </div>
    <script src="/static/script.js"></script>
</body>
</html>`
}

// getCSS returns the stylesheet.
func getCSS() string {
	return `* { box-sizing: border-box; margin: 0; padding: 0; }

body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #fafafa;
    color: #333;
}

.layout { display: flex; min-height: 100vh; }

.sidebar {
    width: 300px;
    background: #f0f2f6;
    padding: 1.5rem 1rem;
    border-right: 1px solid #ddd;
}

.sidebar section { margin-bottom: 1.5rem; }
.sidebar h2 { margin-bottom: 1rem; }
.sidebar h3 { margin-bottom: 0.5rem; font-size: 1rem; }

.info-box {
    background: #e3f2fd;
    border-radius: 0.5rem;
    padding: 0.6rem;
    margin-bottom: 0.5rem;
    font-size: 0.9rem;
    word-break: break-all;
}

.action-btn {
    width: 100%;
    background-color: #1f77b4;
    color: white;
    border: none;
    border-radius: 0.5rem;
    padding: 0.5rem;
    font-weight: bold;
    cursor: pointer;
    margin-bottom: 0.5rem;
}

.action-btn:hover { background-color: #1565c0; }
.action-btn.danger { background-color: #b33939; }
.action-btn.danger:hover { background-color: #992e2e; }

.session-btn {
    width: 100%;
    background: white;
    border: 1px solid #ccc;
    border-radius: 0.5rem;
    padding: 0.45rem;
    cursor: pointer;
    margin-bottom: 0.3rem;
    text-align: left;
    overflow: hidden;
    text-overflow: ellipsis;
    white-space: nowrap;
}

.session-btn.active { border-color: #1f77b4; background: #e3f2fd; }

.instructions { padding-left: 1.2rem; font-size: 0.85rem; color: #555; }

.main {
    flex: 1;
    display: flex;
    flex-direction: column;
    padding: 1.5rem 10%;
}

.main-header {
    font-size: 2.5rem;
    font-weight: bold;
    color: #1f77b4;
    text-align: center;
    margin-bottom: 0.5rem;
}

.sub-header {
    font-size: 1.2rem;
    color: #666;
    text-align: center;
    margin-bottom: 2rem;
}

.transcript { flex: 1; overflow-y: auto; padding-bottom: 1rem; }

.chat-message {
    padding: 1rem;
    border-radius: 0.5rem;
    margin-bottom: 1rem;
    white-space: pre-wrap;
}

.user-message { background-color: #e3f2fd; margin-left: 20%; }
.assistant-message { background-color: #f5f5f5; margin-right: 20%; }

.error-box {
    background: #fdecea;
    color: #b71c1c;
    border-radius: 0.5rem;
    padding: 0.8rem;
    margin-bottom: 1rem;
}

.chat-form { display: flex; gap: 0.5rem; }

.chat-form input {
    flex: 1;
    padding: 0.7rem;
    border: 1px solid #ccc;
    border-radius: 0.5rem;
    font-size: 1rem;
}

.chat-form button {
    background-color: #1f77b4;
    color: white;
    border: none;
    border-radius: 0.5rem;
    padding: 0.7rem 1.5rem;
    font-weight: bold;
    cursor: pointer;
}

.chat-form button:disabled { background-color: #9bbdd6; cursor: wait; }

.hidden { display: none; }`
}

// getJS returns the page script: it renders state snapshots from the JSON
// API and posts user actions back.
func getJS() string {
	return `const WELCOME = "👋 Hello! I'm your AI assistant. I can remember our conversation. How can I help you today?";

async function refresh() {
    const res = await fetch('/api/state');
    render(await res.json());
}

function render(state) {
    document.getElementById('current-session').textContent = state.current;
    document.getElementById('naming-tip').classList.toggle('hidden', state.current !== 'default');

    const list = document.getElementById('session-list');
    list.innerHTML = '';
    for (const name of state.sessions) {
        const btn = document.createElement('button');
        btn.className = 'session-btn' + (name === state.current ? ' active' : '');
        btn.textContent = '💬 ' + name;
        btn.onclick = () => post('/api/sessions/switch', {name});
        list.appendChild(btn);
    }

    const transcript = document.getElementById('transcript');
    transcript.innerHTML = '';
    if (state.welcome) {
        appendMessage(transcript, 'assistant', WELCOME);
    } else {
        for (const msg of state.messages) {
            appendMessage(transcript, msg.role, msg.content);
        }
    }
    transcript.scrollTop = transcript.scrollHeight;
}

function appendMessage(transcript, role, content) {
    const div = document.createElement('div');
    div.className = 'chat-message ' + (role === 'user' ? 'user-message' : 'assistant-message');
    div.textContent = content;
    transcript.appendChild(div);
}

async function post(url, body) {
    const res = await fetch(url, {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify(body || {}),
    });
    if (res.ok) {
        render(await res.json());
    }
    return res;
}

function showError(text) {
    const box = document.getElementById('error-box');
    box.textContent = text;
    box.classList.remove('hidden');
}

function clearError() {
    document.getElementById('error-box').classList.add('hidden');
}

document.getElementById('new-chat-btn').onclick = () => post('/api/sessions/new');
document.getElementById('clear-btn').onclick = () => post('/api/sessions/clear');

document.getElementById('chat-form').onsubmit = async (e) => {
    e.preventDefault();
    const input = document.getElementById('chat-input');
    const message = input.value.trim();
    if (!message) return;

    clearError();
    const sendBtn = document.getElementById('send-btn');
    sendBtn.disabled = true;
    try {
        const res = await fetch('/api/chat', {
            method: 'POST',
            headers: {'Content-Type': 'application/json'},
            body: JSON.stringify({message}),
        });
        if (res.ok) {
            input.value = '';
        } else {
            const err = await res.json().catch(() => ({error: res.statusText}));
            showError('Error: ' + (err.error || 'request failed') + (err.hint ? '. ' + err.hint : ''));
        }
    } finally {
        sendBtn.disabled = false;
        await refresh();
    }
};

refresh();`
}
